// Package ai extracts invoice fields from document text with an LLM when the
// regex heuristics come up empty. It is optional: without an API key the
// agent is disabled and extraction stays purely local.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"invoice-automation/internal/bo"
)

// Agent wraps the OpenAI client for structured document extraction.
type Agent struct {
	client  *openai.Client
	enabled bool
}

// NewAgent builds an agent from an API key. An empty key yields a disabled
// agent, so callers can wire it unconditionally and gate on Enabled.
func NewAgent(apiKey string) *Agent {
	if apiKey == "" {
		return &Agent{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client, enabled: true}
}

// Enabled reports whether an API key was configured.
func (a *Agent) Enabled() bool {
	return a.enabled
}

// ExtractDocument asks the model to pull invoice fields out of raw document
// text, returning them in the same shape the local heuristics produce.
func (a *Agent) ExtractDocument(ctx context.Context, text string) (*bo.Extraction, error) {
	if !a.enabled {
		return nil, fmt.Errorf("ai extraction disabled: no API key configured")
	}

	prompt := fmt.Sprintf(`You extract billing fields from business order documents.
Rules:
1. Return the order number, client name, and client tax registration number exactly as they appear.
2. The tax registration number must contain digits only.
3. List line item descriptions, quantities, and unit rates in document order.
4. Leave any field you cannot find empty. Do NOT invent values.

Document:
%s`, text)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "bo_extraction",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Fields extracted from a business order document"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var extraction bo.Extraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	return &extraction, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v bo.Extraction
	return reflector.Reflect(v)
}
