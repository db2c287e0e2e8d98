// Package cli is the one-shot command adapter for scripted use.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"invoice-automation/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "extract", "ext", "x":
		if len(args) < 2 {
			log.Fatal("Usage: app extract <document.pdf|.csv|.xlsx>")
		}
		path := args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}
		result, err := svc.ProcessUpload(ctx, path, data)
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)

	case "clients", "cl":
		printClients(svc)

	case "add-client":
		if len(args) < 3 {
			log.Fatal("Usage: app add-client \"<name>\" \"<address>\"")
		}
		if err := svc.AddClient(args[1], args[2]); err != nil {
			log.Fatalf("Failed to add client: %v", err)
		}
		fmt.Printf("Client %s added.\n", args[1])

	case "remove-client":
		if len(args) < 2 {
			log.Fatal("Usage: app remove-client \"<name>\"")
		}
		removed, err := svc.RemoveClient(args[1])
		if err != nil {
			log.Fatalf("Failed to remove client: %v", err)
		}
		if !removed {
			fmt.Fprintf(os.Stderr, "Client %s not found.\n", args[1])
			os.Exit(1)
		}
		fmt.Printf("Client %s removed.\n", args[1])

	case "next-number", "next":
		fmt.Println(svc.NextInvoiceNumber())

	default:
		log.Fatalf("Unknown command: %s\nAvailable: extract, clients, add-client, remove-client, next-number", args[0])
	}
}

func printClients(svc app.ApplicationService) {
	clients := svc.ListClients()

	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-58s\n", "CLIENT REGISTRY")
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-34s %-10s %s\n", "NAME", "KIND", "ADDRESS")
	fmt.Println(strings.Repeat("-", 62))
	for _, c := range clients {
		kind := "builtin"
		if c.Custom {
			kind = "custom"
		}
		addr := strings.ReplaceAll(c.Address, "\n", ", ")
		fmt.Printf("  %-34s %-10s %s\n", c.Name, kind, addr)
	}
	fmt.Println(strings.Repeat("=", 62))
}
