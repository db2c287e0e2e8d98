package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	webAdapter "invoice-automation/internal/adapters/web"
	"invoice-automation/internal/ai"
	"invoice-automation/internal/app"
	"invoice-automation/internal/core"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry, err := core.NewRegistry(envOr("CLIENTS_FILE", "clients.json"))
	if err != nil {
		log.Fatalf("client registry: %v", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; AI extraction disabled")
	}
	agent := ai.NewAgent(apiKey)

	svc, err := app.NewService(app.Config{
		TemplateFile:  envOr("TEMPLATE_FILE", "invoice_template.xlsx"),
		OutputDir:     envOr("OUTPUT_DIR", "invoices"),
		InvoicePrefix: envOr("INVOICE_PREFIX", "INV-FY2526-"),
	}, registry, agent)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	uploadMaxBytes := int64(10 << 20) // 10 MB
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			uploadMaxBytes = n
		}
	}

	port := envOr("SERVER_PORT", "8080")
	handler := webAdapter.NewHandler(svc, uploadMaxBytes)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
