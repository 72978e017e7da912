// Package summary turns an analysis result into a short plain-language
// paragraph using OpenAI. It is optional: without an API key the feature is
// disabled and the rest of the service is unaffected.
package summary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/probability"
)

type Summarizer struct {
	client openai.Client
	model  openai.ChatModel
}

// NewSummarizer creates a summarizer authenticated via the OPENAI_API_KEY
// environment variable.
func NewSummarizer() (*Summarizer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Summarizer{
		client: client,
		model:  openai.ChatModelGPT4oMini,
	}, nil
}

const systemPrompt = `You summarize adverse-weather probability estimates for event planners.
Write two or three plain sentences. Mention the headline probability, what drives it, and how the month compares to the rest of the year.
No markdown, no disclaimers about being an AI.`

// Summarize produces a short narrative for the result at the given place and
// date.
func (s *Summarizer) Summarize(ctx context.Context, place string, date time.Time, res *probability.Result) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(place, date, res)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarize: no choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(place string, date time.Time, res *probability.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %s\n", place)
	fmt.Fprintf(&b, "Target date: %s\n", date.Format("2 January 2006"))
	fmt.Fprintf(&b, "Adverse-weather probability for that month: %d%% (data source: %s)\n", res.Probability, res.DataSource)
	b.WriteString("Monthly series (month, probability%, avg temp C, avg precip mm, avg wind km/h):\n")
	for _, m := range res.MonthlyData {
		fmt.Fprintf(&b, "%s, %d, %.1f, %.1f, %.1f\n", m.Month, m.Probability, m.AvgTemperature, m.AvgPrecipitation, m.AvgWindSpeed)
	}
	return b.String()
}
