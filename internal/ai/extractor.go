package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// BillExtraction is the structured result of reading a vendor bill image.
// Monetary fields are decimal strings; OrderDate is dd/MM/yyyy.
type BillExtraction struct {
	VendorName      string               `json:"vendor_name" jsonschema_description:"Vendor or supplier name printed on the bill"`
	OrderDate       string               `json:"order_date" jsonschema_description:"Bill or order date in dd/MM/yyyy format"`
	Items           []BillExtractionItem `json:"items" jsonschema_description:"Line items found on the bill"`
	GSTPercentage   string               `json:"gst_percentage" jsonschema_description:"GST percentage as a decimal string, e.g. \"18\""`
	DeliveryCharges string               `json:"delivery_charges" jsonschema_description:"Delivery or freight charges as a decimal string, \"0\" if absent"`
}

// BillExtractionItem is one line item read off the bill.
type BillExtractionItem struct {
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	PurchasePrice string `json:"purchase_price" jsonschema_description:"Unit price as a decimal string"`
}

const extractBillPrompt = `You are reading a supplier bill or purchase receipt for a small retail business.
Extract the vendor name, the bill date, every line item with its quantity and unit price, the GST percentage, and any delivery or freight charges.
Rules:
1. Dates MUST be formatted dd/MM/yyyy.
2. Prices and charges are decimal strings with no currency symbol (e.g. "1250.50").
3. If GST or delivery charges are not printed on the bill, use "0".
4. Do not invent line items; only extract what is visible.`

// ExtractBill reads a bill image and returns the structured purchase draft.
// The image is sent inline as a base64 data URL.
func (c *Client) ExtractBill(ctx context.Context, mimeType string, image []byte) (*BillExtraction, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty bill image")
	}

	schemaMap, err := structuredSchema(BillExtraction{})
	if err != nil {
		return nil, err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					responses.ResponseInputMessageContentListParam{
						responses.ResponseInputContentUnionParam{
							OfInputText: &responses.ResponseInputTextParam{Text: extractBillPrompt},
						},
						responses.ResponseInputContentUnionParam{
							OfInputImage: &responses.ResponseInputImageParam{
								ImageURL: param.NewOpt(dataURL),
								Detail:   responses.ResponseInputImageDetailAuto,
							},
						},
					},
					responses.EasyInputMessageRoleUser,
				),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "bill_extraction",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Structured line items and totals read from a supplier bill"),
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

	var extraction BillExtraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	c.log.Info().Str("vendor", extraction.VendorName).Int("items", len(extraction.Items)).
		Msg("extracted bill")
	return &extraction, nil
}
