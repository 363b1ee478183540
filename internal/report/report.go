// Package report turns a station's analysis results into a short prose
// climate summary using OpenAI's chat completion API.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/climatrend/climatrend/internal/climate"
)

const systemPrompt = "You are a climatologist writing a plain-language summary " +
	"of long-term temperature trends for a general audience. Be factual and " +
	"concise: three short paragraphs, no bullet points, no hedging beyond what " +
	"the numbers support."

// Generator produces narrative climate reports.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator reads the OPENAI_API_KEY environment variable for
// authentication.
func NewGenerator() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{
		client: client,
		model:  openai.ChatModelGPT4oMini,
	}, nil
}

// Facts holds the computed inputs for a narrative report.
type Facts struct {
	StationName string
	Annual      []climate.AnnualAnomaly
	Decades     []climate.DecadeStats
	Trend       *climate.ForecastResult
	Outlook     []climate.HorizonOutlook
}

// BuildPrompt renders the facts as the user message sent to the model. Kept
// separate from Generate so the prompt content is testable offline.
func BuildPrompt(f Facts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Station: %s\n", f.StationName)

	if n := len(f.Annual); n > 0 {
		first, last := f.Annual[0], f.Annual[n-1]
		fmt.Fprintf(&b, "Annual record: %d-%d (%d years with sufficient coverage)\n", first.Year, last.Year, n)
		fmt.Fprintf(&b, "Latest year %d: mean %.1f°C, anomaly %+.2f°C vs baseline\n", last.Year, last.AvgTemp, last.Anomaly)
	}

	for _, d := range f.Decades {
		fmt.Fprintf(&b, "Decade %s: mean %.2f°C (%+.2f°C vs first decade, %d years)\n", d.Label, d.AvgTemp, d.DiffFromFirst, d.Years)
	}

	if f.Trend != nil {
		fmt.Fprintf(&b, "Linear trend: %+.3f°C/decade (R²=%.2f)\n", f.Trend.SlopePerDecade, f.Trend.RSquared)
	}

	for _, h := range f.Outlook {
		fmt.Fprintf(&b, "Projection +%dy (%d): mean %.1f°C, anomaly %+.2f°C, ~%.0f heatwave days\n",
			h.YearsAhead, h.Year, h.AvgTemp, h.Anomaly, h.HeatwaveDays)
	}

	b.WriteString("\nWrite the summary now.")
	return b.String()
}

// Generate asks the model for a narrative built from the given facts.
func (g *Generator) Generate(ctx context.Context, f Facts) (string, error) {
	log.Printf("report: generating narrative for %s", f.StationName)

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(f)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("report generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}

	text := resp.Choices[0].Message.Content
	log.Printf("report: generated %d characters for %s", len(text), f.StationName)
	return text, nil
}
