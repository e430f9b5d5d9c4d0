package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/llm"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/study"
)

// StudyService is the subset of study.Service the API needs.
type StudyService interface {
	GeneratePlan(ctx context.Context, persona prompt.Persona, subject string, weeklyHours float64) (study.Plan, error)
	SolveDoubt(ctx context.Context, query string, img *prompt.Image) (string, error)
	FindResources(ctx context.Context, topic string) (study.ResourceResult, error)
}

// StudyHandler serves the three study actions.
type StudyHandler struct {
	svc     StudyService
	persona prompt.Persona
}

// NewStudyHandler creates a handler. persona applies when a plan request
// does not name one.
func NewStudyHandler(svc StudyService, persona prompt.Persona) *StudyHandler {
	return &StudyHandler{svc: svc, persona: persona}
}

type planRequest struct {
	Persona     string   `json:"persona"`
	Subject     string   `json:"subject"`
	WeeklyHours *float64 `json:"weeklyHours"`
}

type planResponse struct {
	Plan study.Plan            `json:"plan"`
	View dashboard.PlannerView `json:"view"`
}

// Plan handles POST /api/plan.
func (h *StudyHandler) Plan(c *gin.Context) {
	var req planRequest
	if !bindJSON(c, &req) {
		return
	}

	persona := h.persona
	if req.Persona != "" {
		p, err := prompt.ParsePersona(req.Persona)
		if err != nil {
			RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
			return
		}
		persona = p
	}
	hours := float64(dashboard.DefaultWeeklyHours)
	if req.WeeklyHours != nil {
		hours = *req.WeeklyHours
	}

	plan, err := h.svc.GeneratePlan(c.Request.Context(), persona, req.Subject, hours)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if plan.Topics == nil {
		plan.Topics = []study.Topic{}
	}
	RespondOK(c, planResponse{Plan: plan, View: dashboard.ComposePlanner(plan)})
}

type doubtRequest struct {
	Query string `json:"query"`
	// Image is a data URL or bare base64 payload.
	Image string `json:"image"`
}

type doubtResponse struct {
	Text   string              `json:"text"`
	Blocks []format.Block      `json:"blocks"`
	Counts map[format.Kind]int `json:"counts"`
}

// Doubt handles POST /api/doubts.
func (h *StudyHandler) Doubt(c *gin.Context) {
	var req doubtRequest
	if !bindJSON(c, &req) {
		return
	}

	var img *prompt.Image
	if req.Image != "" {
		parsed, err := prompt.ParseDataURL(req.Image)
		if err != nil {
			RespondError(c, http.StatusBadRequest, CodeBadImage, err)
			return
		}
		img = parsed
	}

	text, err := h.svc.SolveDoubt(c.Request.Context(), req.Query, img)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	blocks := dashboard.ComposeDoubt(text).Blocks
	RespondOK(c, doubtResponse{Text: text, Blocks: blocks, Counts: format.Count(blocks)})
}

type resourceRequest struct {
	Topic string `json:"topic"`
}

type resourceResponse struct {
	Text    string                 `json:"text"`
	Sources []study.SourceLink     `json:"sources"`
	View    dashboard.ResourceView `json:"view"`
}

// Resources handles POST /api/resources.
func (h *StudyHandler) Resources(c *gin.Context) {
	var req resourceRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.FindResources(c.Request.Context(), req.Topic)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, resourceResponse{Text: res.Text, Sources: res.Sources, View: dashboard.ComposeResources(res)})
}

// bindJSON decodes the request body into dst, answering 413 when the body
// limit was hit and 400 for anything else.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(c, http.StatusRequestEntityTooLarge, CodeTooLarge,
			fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
	return false
}

// respondServiceError maps service failures to status codes. Upstream
// detail stays in the log; clients get a generic message.
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var rl *llm.ErrRateLimit
	switch {
	case errors.Is(err, study.ErrMissingInput):
		RespondError(c, http.StatusBadRequest, CodeMissingInput, err)
	case errors.As(err, &rl):
		RespondError(c, http.StatusTooManyRequests, CodeRateLimited, errors.New("generative service is rate limited"))
	default:
		RespondError(c, http.StatusBadGateway, CodeUpstream, errors.New("generative service request failed"))
	}
}
