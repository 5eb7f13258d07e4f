package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"pocketa-server/src/models"
)

// Using Gemini 1.5 Flash for speed/cost balance
const modelName = "gemini-1.5-flash"

// Parser converts free-form text into a structured expense. The primary
// path asks the model; any failure along it degrades to a deterministic
// rule-based parse. Parse never returns an error.
type Parser struct {
	generate func(ctx context.Context, prompt string) (string, error)
}

// New builds a parser backed by the Gemini API. An empty key yields a
// parser that always uses the fallback path.
func New(ctx context.Context, apiKey string) *Parser {
	if apiKey == "" {
		log.Println("INFO: GEMINI_API_KEY not set, voice parsing will use fallback only")
		return &Parser{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Printf("ERROR: Failed to init AI client, voice parsing will use fallback only: %v", err)
		return &Parser{}
	}

	return &Parser{
		generate: func(ctx context.Context, prompt string) (string, error) {
			resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt),
				&genai.GenerateContentConfig{MaxOutputTokens: 1024})
			if err != nil {
				return "", err
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
				return "", fmt.Errorf("empty response from model")
			}
			var text strings.Builder
			for _, part := range resp.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		},
	}
}

const promptTemplate = `Parse the following expense input and extract the amount, category, and optional description.
Return ONLY a valid JSON object with this exact structure: {"amount": number, "category": "food"|"transport"|"shopping"|"entertainment"|"bills"|"other", "description": string or null}

Input: %q

Rules:
- Amount must be a positive number (extract numeric value, ignore currency symbols)
- Category must be one of: food, transport, shopping, entertainment, bills, other
- Description is optional, can be null or empty string
- If category is unclear, use "other"
- Return ONLY the JSON object, no other text

Example inputs and outputs:
- "500 food" -> {"amount": 500, "category": "food", "description": null}
- "100 rupees for taxi" -> {"amount": 100, "category": "transport", "description": "taxi"}
- "2000 shopping clothes" -> {"amount": 2000, "category": "shopping", "description": "clothes"}`

// Parse runs the primary model path and falls back on any failure:
// transport errors, non-JSON output, or a missing/non-positive amount.
func (p *Parser) Parse(ctx context.Context, text string) models.ParsedExpense {
	parsed, err := p.parsePrimary(ctx, text)
	if err != nil {
		log.Printf("ERROR: Model parse failed, using fallback: %v", err)
		return fallbackParse(text)
	}
	return parsed
}

func (p *Parser) parsePrimary(ctx context.Context, text string) (models.ParsedExpense, error) {
	if p.generate == nil {
		return models.ParsedExpense{}, fmt.Errorf("model client not configured")
	}

	raw, err := p.generate(ctx, fmt.Sprintf(promptTemplate, text))
	if err != nil {
		return models.ParsedExpense{}, err
	}

	jsonText := stripCodeFences(raw)

	var extracted struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal([]byte(jsonText), &extracted); err != nil {
		return models.ParsedExpense{}, fmt.Errorf("parse model response: %w", err)
	}

	// A parsed-but-invalid amount must not reach the caller as a
	// successful low-quality result.
	if extracted.Amount <= 0 {
		return models.ParsedExpense{}, fmt.Errorf("invalid amount extracted")
	}

	parsed := models.ParsedExpense{
		Amount:   extracted.Amount,
		Category: normalizeCategory(extracted.Category),
	}
	if extracted.Description != nil && *extracted.Description != "" {
		parsed.Description = extracted.Description
	}
	return parsed, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// categorySynonyms maps colloquial terms to canonical categories. Order
// matters: substring matching returns the first entry whose key occurs in
// the input.
var categorySynonyms = []struct {
	key      string
	category models.Category
}{
	{"food", models.CategoryFood},
	{"meal", models.CategoryFood},
	{"restaurant", models.CategoryFood},
	{"groceries", models.CategoryFood},
	{"transport", models.CategoryTransport},
	{"taxi", models.CategoryTransport},
	{"uber", models.CategoryTransport},
	{"bus", models.CategoryTransport},
	{"train", models.CategoryTransport},
	{"shopping", models.CategoryShopping},
	{"purchase", models.CategoryShopping},
	{"buy", models.CategoryShopping},
	{"entertainment", models.CategoryEntertainment},
	{"movie", models.CategoryEntertainment},
	{"game", models.CategoryEntertainment},
	{"bills", models.CategoryBills},
	{"bill", models.CategoryBills},
	{"utility", models.CategoryBills},
	{"other", models.CategoryOther},
}

func normalizeCategory(category string) models.Category {
	lower := strings.ToLower(strings.TrimSpace(category))

	for _, s := range categorySynonyms {
		if lower == s.key {
			return s.category
		}
	}

	for _, s := range categorySynonyms {
		if strings.Contains(lower, s.key) {
			return s.category
		}
	}

	return models.CategoryOther
}

var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)

// fallbackPatterns are tried in order; the first match wins.
var fallbackPatterns = []struct {
	pattern  *regexp.Regexp
	category models.Category
}{
	{regexp.MustCompile(`\b(food|meal|restaurant|groceries|eat)\b`), models.CategoryFood},
	{regexp.MustCompile(`\b(transport|taxi|uber|bus|train|travel)\b`), models.CategoryTransport},
	{regexp.MustCompile(`\b(shopping|purchase|buy|shop)\b`), models.CategoryShopping},
	{regexp.MustCompile(`\b(entertainment|movie|game|fun)\b`), models.CategoryEntertainment},
	{regexp.MustCompile(`\b(bill|bills|utility)\b`), models.CategoryBills},
}

// fallbackParse is the deterministic path. It never fails: no numeric
// content means amount 0, no keyword match means category "other", and
// the description is always the trimmed input.
func fallbackParse(text string) models.ParsedExpense {
	var amount float64
	if match := amountPattern.FindString(text); match != "" {
		if v, err := strconv.ParseFloat(match, 64); err == nil {
			amount = v
		}
	}

	category := models.CategoryOther
	lower := strings.ToLower(text)
	for _, fp := range fallbackPatterns {
		if fp.pattern.MatchString(lower) {
			category = fp.category
			break
		}
	}

	description := strings.TrimSpace(text)
	return models.ParsedExpense{
		Amount:      amount,
		Category:    category,
		Description: &description,
	}
}
