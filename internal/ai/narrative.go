package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"billdesk/internal/core"

	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// DashboardNarrative turns the current report into a short plain-language
// summary for the dashboard. The output is free text, not structured.
func (c *Client) DashboardNarrative(ctx context.Context, report *core.BusinessReport) (string, error) {
	metrics, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	prompt := fmt.Sprintf(`You are a financial assistant for a small retail business.
Given the metrics below, write a short narrative summary (3-5 sentences) of how the business is doing.
Mention revenue, profit, anything overdue or low on stock, and one concrete suggestion.
Use plain language with no markdown formatting and no bullet points.

Metrics:
%s`, metrics)

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}
	return content, nil
}
