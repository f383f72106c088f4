package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const claudeModel = "claude-sonnet-4-20250514"

// Claude parses text with the Anthropic Messages API.
type Claude struct {
	client  anthropic.Client
	timeout time.Duration
}

var _ Parser = &Claude{}

// NewClaude returns an AI backed parser. Calls time out after the passed
// duration and are reported as ErrParse, a hung upstream must not hang the
// request.
func NewClaude(apiKey string, timeout time.Duration) *Claude {
	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		timeout: timeout,
	}
}

// claudeResult is the JSON shape the prompt asks for.
type claudeResult struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Type        string      `json:"type"`
	Confidence  float64     `json:"confidence"`
}

// Parse sends the text to the model and decodes the structured reply.
// Any upstream or decoding failure is returned as ErrParse.
func (p *Claude) Parse(ctx context.Context, text string, categories []string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     claudeModel,
		MaxTokens: 500,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt(text, categories))),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("AI parsing failed")
		return Result{}, ErrParse
	}

	var reply strings.Builder
	for _, block := range message.Content {
		reply.WriteString(block.Text)
	}

	var parsed claudeResult
	if err := json.Unmarshal([]byte(stripFences(reply.String())), &parsed); err != nil {
		log.Warn().Err(err).Str("reply", reply.String()).Msg("AI reply is not valid JSON")
		return Result{}, ErrParse
	}

	amount, err := decimal.NewFromString(parsed.Amount.String())
	if err != nil || !amount.IsPositive() {
		return Result{}, ErrParse
	}

	kind := models.TransactionType(parsed.Type)
	if !kind.Valid() {
		kind = models.TypeExpense
	}

	return Result{
		Amount:      amount,
		Description: parsed.Description,
		Category:    parsed.Category,
		Date:        NormalizeDate(parsed.Date, time.Now()),
		Type:        kind,
		Confidence:  parsed.Confidence,
	}, nil
}

// prompt asks for a single JSON object so that the reply can be decoded
// without any free-text handling.
func prompt(text string, categories []string) string {
	today := time.Now().In(time.UTC).Format("2006-01-02")

	if len(categories) == 0 {
		categories = []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Other"}
	}

	return fmt.Sprintf(`Extract transaction details from this text. The text may be a bank SMS or a spoken sentence in English, Hindi, Hinglish or another language, but RETURN EVERYTHING IN ENGLISH.

Text: %q

Available categories: %s
Today's date: %s

Return ONLY a JSON object with these fields, no other text:
- amount (number): the transaction amount
- description (string): merchant name or a brief description, 2-5 words
- category (string): best matching category from the list above
- date (string): YYYY-MM-DD, resolve relative dates like "yesterday" against today
- type (string): "expense" for money going out, "income" for money coming in
- confidence (number): your confidence in the parsing, 0.0 to 1.0`,
		text, strings.Join(categories, ", "), today)
}

// stripFences removes markdown code fences some replies are wrapped in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
