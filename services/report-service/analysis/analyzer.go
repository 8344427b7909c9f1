// Package analysis converts a free-text incident description into a
// structured (priority, summary, category suggestion) triple. The adapter
// never blocks submission: every call returns within the configured bound,
// falling back to a fixed default on timeout or any error.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chandabaj-reporting-system/pkg/middleware"
	"chandabaj-reporting-system/services/report-service/models"
)

// DefaultTimeout is the observed budget the submission flow tolerates
// before giving up on the model.
const DefaultTimeout = 3 * time.Second

type Result struct {
	Priority           models.Priority `json:"priority"`
	Summary            string          `json:"summary"`
	CategorySuggestion string          `json:"categorySuggestion"`
}

// Fallback is the deterministic result used when the model is slow,
// unreachable, or returns garbage. It covers every error class.
func Fallback() Result {
	return Result{
		Priority:           models.PriorityMedium,
		Summary:            "Analysis unavailable.",
		CategorySuggestion: "Other",
	}
}

// Generator produces the raw JSON completion for a prompt. The production
// implementation calls Gemini; tests inject fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Analyzer struct {
	gen     Generator
	timeout time.Duration
}

func New(gen Generator) *Analyzer {
	return &Analyzer{gen: gen, timeout: DefaultTimeout}
}

func NewWithTimeout(gen Generator, timeout time.Duration) *Analyzer {
	return &Analyzer{gen: gen, timeout: timeout}
}

// Analyze runs the model with a bounded wait. It never returns an error:
// any failure yields Fallback().
func (a *Analyzer) Analyze(ctx context.Context, description string) Result {
	if a.gen == nil {
		return Fallback()
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Analyze this report of extortion or corruption in Bangladesh. "+
			"Summarize it in Bengali and determine priority (Low/Medium/High) based on severity. Report: %s",
		description,
	)

	type generated struct {
		text string
		err  error
	}
	ch := make(chan generated, 1)
	go func() {
		text, err := a.gen.Generate(ctx, prompt)
		ch <- generated{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		middleware.LogWarn("", "AI analysis timed out, using fallback", ctx.Err())
		return Fallback()
	case g := <-ch:
		if g.err != nil {
			middleware.LogWarn("", "AI analysis failed, using fallback", g.err)
			return Fallback()
		}
		return parseResult(g.text)
	}
}

func parseResult(text string) Result {
	var raw struct {
		Priority           string `json:"priority"`
		Summary            string `json:"summary"`
		CategorySuggestion string `json:"categorySuggestion"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		middleware.LogWarn("", "AI analysis returned malformed JSON, using fallback", err)
		return Fallback()
	}
	if strings.TrimSpace(raw.Summary) == "" {
		return Fallback()
	}

	priority, ok := models.ParsePriority(raw.Priority)
	if !ok {
		priority = models.PriorityMedium
	}
	category := raw.CategorySuggestion
	if category == "" {
		category = "Other"
	}

	return Result{
		Priority:           priority,
		Summary:            raw.Summary,
		CategorySuggestion: category,
	}
}
