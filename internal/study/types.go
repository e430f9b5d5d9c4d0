package study

import (
	"net/url"
	"strings"
)

// Priority ranks a plan topic.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority normalises case. Unknown values map to Medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Topic is one entry of a study plan.
type Topic struct {
	Name           string   `json:"name"`
	Priority       Priority `json:"priority"`
	EstimatedHours float64  `json:"estimatedHours"`
}

// Plan is a generated study plan. Each successful request produces a new
// Plan that replaces the previous one wholesale.
type Plan struct {
	Subject string  `json:"subject"`
	Topics  []Topic `json:"topics"`
}

// IsEmpty reports whether the plan carries nothing to show.
func (p Plan) IsEmpty() bool {
	return p.Subject == "" && len(p.Topics) == 0
}

// TotalHours sums the estimated hours of all topics.
func (p Plan) TotalHours() float64 {
	var total float64
	for _, t := range p.Topics {
		total += t.EstimatedHours
	}
	return total
}

// SourceLink is a grounding citation returned with resource results.
type SourceLink struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Host returns the hostname of the link, or "" when the URI does not parse.
func (s SourceLink) Host() string {
	u, err := url.Parse(s.URI)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ResourceResult is the raw resource text plus its citations.
type ResourceResult struct {
	Text    string       `json:"text"`
	Sources []SourceLink `json:"sources"`
}
