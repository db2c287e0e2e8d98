package main

import (
	"context"
	"log"
	"os"

	"invoice-automation/internal/adapters/cli"
	"invoice-automation/internal/ai"
	"invoice-automation/internal/app"
	"invoice-automation/internal/core"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: app <extract|clients|add-client|remove-client|next-number> [args]")
	}

	registry, err := core.NewRegistry(envOr("CLIENTS_FILE", "clients.json"))
	if err != nil {
		log.Fatalf("client registry: %v", err)
	}

	agent := ai.NewAgent(os.Getenv("OPENAI_API_KEY"))

	svc, err := app.NewService(app.Config{
		TemplateFile:  envOr("TEMPLATE_FILE", "invoice_template.xlsx"),
		OutputDir:     envOr("OUTPUT_DIR", "invoices"),
		InvoicePrefix: envOr("INVOICE_PREFIX", "INV-FY2526-"),
	}, registry, agent)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	cli.Run(context.Background(), svc, os.Args[1:])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
