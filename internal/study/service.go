// Package study runs the three dashboard actions against the generative
// service: study plans, doubt solving and resource search.
package study

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/llm"
	"github.com/abhisek/eduvantage/internal/prompt"
)

// Service issues study requests. It is safe for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService creates a study service. A nil logger discards output.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log.Named("study")}
}

var planSchema = &llm.Schema{
	Name:        prompt.PlanSchemaName,
	Description: "A prioritised weekly study plan",
	Definition:  prompt.PlanSchema(),
}

// GeneratePlan asks for a structured study plan. A response that does not
// parse or match the schema yields an empty Plan and a nil error. Service
// failures are returned.
func (s *Service) GeneratePlan(ctx context.Context, persona prompt.Persona, subject string, weeklyHours float64) (Plan, error) {
	if strings.TrimSpace(subject) == "" {
		return Plan{}, ErrMissingInput
	}
	ctx = llm.WithPurpose(ctx, llm.PurposePlan)

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt.BuildPlanPrompt(persona, subject, weeklyHours)},
		},
		Schema:    planSchema,
		Model:     s.cfg.PlanModel,
		MaxTokens: s.cfg.PlanMaxTokens,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			s.log.Warn("discarding malformed study plan", zap.Error(err))
			return Plan{}, nil
		}
		return Plan{}, fmt.Errorf("study plan generation: %w", err)
	}

	return s.parsePlan(resp.Content), nil
}

// parsePlan decodes a plan, falling back to an empty plan on any error.
func (s *Service) parsePlan(raw json.RawMessage) Plan {
	var out struct {
		Subject string `json:"subject"`
		Topics  *[]struct {
			Name           string  `json:"name"`
			Priority       string  `json:"priority"`
			EstimatedHours float64 `json:"estimatedHours"`
		} `json:"topics"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("discarding unparseable study plan", zap.Error(err))
		return Plan{}
	}
	if out.Topics == nil {
		s.log.Warn("discarding study plan without topics")
		return Plan{}
	}

	plan := Plan{Subject: out.Subject, Topics: make([]Topic, 0, len(*out.Topics))}
	for _, t := range *out.Topics {
		plan.Topics = append(plan.Topics, Topic{
			Name:           t.Name,
			Priority:       ParsePriority(t.Priority),
			EstimatedHours: max(t.EstimatedHours, 0),
		})
	}
	return plan
}

// SolveDoubt returns the raw worked solution for a question, an image, or
// both.
func (s *Service) SolveDoubt(ctx context.Context, query string, img *prompt.Image) (string, error) {
	payload := prompt.BuildDoubtPrompt(query, img)
	if strings.TrimSpace(query) == "" && !payload.HasImage() {
		return "", ErrMissingInput
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeDoubt)

	msg := llm.Message{Role: llm.RoleUser, Content: payload.Text}
	if payload.HasImage() {
		msg.Images = []llm.Image{{MIMEType: payload.Image.MIMEType, Data: payload.Image.Data}}
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{msg},
		Model:       s.cfg.DoubtModel,
		Temperature: s.cfg.DoubtTemperature,
		TopP:        s.cfg.DoubtTopP,
		TopK:        s.cfg.DoubtTopK,
	})
	if err != nil {
		return "", fmt.Errorf("doubt solving: %w", err)
	}
	return resp.Text(), nil
}

// FindResources searches the web for free learning material on topic.
func (s *Service) FindResources(ctx context.Context, topic string) (ResourceResult, error) {
	if strings.TrimSpace(topic) == "" {
		return ResourceResult{}, ErrMissingInput
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeResources)

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt.BuildResourcePrompt(topic)},
		},
		Model:  s.cfg.ResourceModel,
		Search: true,
	})
	if err != nil {
		return ResourceResult{}, fmt.Errorf("resource search: %w", err)
	}

	result := ResourceResult{Text: resp.Text(), Sources: []SourceLink{}}
	for _, src := range resp.Sources {
		result.Sources = append(result.Sources, SourceLink{URI: src.URI, Title: src.Title})
	}
	return result, nil
}
