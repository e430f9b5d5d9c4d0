package dashboard

import (
	"strconv"

	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/study"
)

// Fallbacks for citations without a title or a parseable host.
const (
	UntitledSource = "External Link"
	UnknownHost    = "WEBSITE"
)

// TopicRow is one planner table row.
type TopicRow struct {
	Name      string         `json:"name"`
	Priority  study.Priority `json:"priority"`
	Hours     string         `json:"hours"`
	Highlight bool           `json:"highlight"`
}

// PlannerView is the composed planner result.
type PlannerView struct {
	Subject    string     `json:"subject"`
	Rows       []TopicRow `json:"rows"`
	TotalHours string     `json:"totalHours"`
}

// ComposePlanner maps a plan to table rows in plan order. High-priority
// topics are highlighted.
func ComposePlanner(p study.Plan) PlannerView {
	v := PlannerView{
		Subject:    p.Subject,
		Rows:       make([]TopicRow, 0, len(p.Topics)),
		TotalHours: FormatHours(p.TotalHours()),
	}
	for _, t := range p.Topics {
		v.Rows = append(v.Rows, TopicRow{
			Name:      t.Name,
			Priority:  t.Priority,
			Hours:     FormatHours(t.EstimatedHours),
			Highlight: t.Priority == study.PriorityHigh,
		})
	}
	return v
}

// DoubtView is the composed doubt answer.
type DoubtView struct {
	Blocks []format.Block `json:"blocks"`
}

// ComposeDoubt classifies a raw answer.
func ComposeDoubt(text string) DoubtView {
	return DoubtView{Blocks: format.Classify(text)}
}

// SourceRow is one citation line under the resource text.
type SourceRow struct {
	Title string `json:"title"`
	Host  string `json:"host"`
	URI   string `json:"uri"`
}

// ResourceView is the composed resource result.
type ResourceView struct {
	Blocks  []format.Block `json:"blocks"`
	Sources []SourceRow    `json:"sources"`
}

// ComposeResources classifies the resource text and builds citation rows.
func ComposeResources(r study.ResourceResult) ResourceView {
	v := ResourceView{
		Blocks:  format.Classify(r.Text),
		Sources: make([]SourceRow, 0, len(r.Sources)),
	}
	for _, src := range r.Sources {
		v.Sources = append(v.Sources, ComposeSource(src))
	}
	return v
}

// ComposeSource applies the title and host fallbacks.
func ComposeSource(src study.SourceLink) SourceRow {
	row := SourceRow{Title: src.Title, Host: src.Host(), URI: src.URI}
	if row.Title == "" {
		row.Title = UntitledSource
	}
	if row.Host == "" {
		row.Host = UnknownHost
	}
	return row
}

// FormatHours renders hours compactly: 4 → "4h", 3.5 → "3.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
