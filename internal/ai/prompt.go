package ai

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

const systemPrompt = `You are an expert financial advisor for small and medium-sized businesses in Peru.
Answer in Spanish. Be brief, clear and direct: the reader has no deep financial knowledge.`

const insightsTemplate = `Analyze the following sales data (JSON) and give a concise summary with key insights and recommendations.
Focus on:
1. Overall sales performance.
2. Possible trends, such as sales rising or falling over time.
3. Practical, actionable recommendations to improve the business.

Sales data:
%s`

// SalePoint is the reduced view of one sale sent to the model.
type SalePoint struct {
	Date      string          `json:"date"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// SalePoints reduces qualifying sales to the fields the model sees, keeping order.
func SalePoints(docs []core.Document) []SalePoint {
	sales := core.QualifyingSales(docs)
	points := make([]SalePoint, 0, len(sales))
	for _, d := range sales {
		h := d.Base()
		points = append(points, SalePoint{Date: h.IssueDate, Total: h.Total, ItemCount: len(h.Items)})
	}
	return points
}

// BuildPrompt embeds the sale points in the insights template.
func BuildPrompt(points []SalePoint) (string, error) {
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sales data: %w", err)
	}
	return fmt.Sprintf(insightsTemplate, data), nil
}
