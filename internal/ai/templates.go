package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"billdesk/internal/core"

	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

type templateSuggestions struct {
	Suggestions []string `json:"suggestions" jsonschema_description:"Short invoice template style names suited to this business"`
}

// SuggestTemplates proposes invoice template styles for the business, based on
// its profile description.
func (c *Client) SuggestTemplates(ctx context.Context, profile *core.BusinessProfile) ([]string, error) {
	schemaMap, err := structuredSchema(templateSuggestions{})
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a branding assistant for a small business billing tool.
Suggest 3 to 5 invoice template styles that would suit the business described below.
Each suggestion is a short name of at most four words (e.g. "Minimal Monochrome", "Classic Ledger").

Business: %s
Description: %s`, profile.Name, profile.Description)

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "template_suggestions",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Invoice template style suggestions"),
				},
			},
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var out templateSuggestions
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	return out.Suggestions, nil
}
