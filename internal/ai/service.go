package ai

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
)

// Client wraps the OpenAI client for the assistant flows: bill extraction,
// dashboard narratives, and invoice template suggestions.
type Client struct {
	client *openai.Client
	log    zerolog.Logger
}

// NewClient builds a Client with the given API key.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &client, log: log}
}

// structuredSchema reflects v into the schema map the responses API expects
// for strict structured output.
func structuredSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
