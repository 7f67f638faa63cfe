package schema

import "time"

// Ticket statuses. The scan job only looks at open tickets.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Instance is a concrete record (site, element or ticket) created against
// one template, carrying one value per template field.
type Instance struct {
	ID         string    `json:"id"`
	Family     Family    `json:"family"`
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	Values     ValueSet  `json:"values"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`

	// SiteID links an element to the site that owns it; empty otherwise.
	SiteID string `json:"siteId,omitempty"`

	// Ticket-only lifecycle fields.
	Status      string     `json:"status,omitempty"`
	SLADeadline *time.Time `json:"slaDeadline,omitempty"`
	SLABreached bool       `json:"slaBreached,omitempty"`
}

// SLADeadlineFor computes a ticket's turnaround deadline from its template's
// Sla-priority field and the priority stored in the value set. Returns nil
// when the template has no SLA field, no priority was chosen, or the chosen
// label is no longer in the table.
func SLADeadlineFor(tpl *Template, values ValueSet, from time.Time) *time.Time {
	field, ok := tpl.SLAField()
	if !ok {
		return nil
	}
	label, ok := values.Get(field.Name)
	if !ok || label == "" {
		return nil
	}
	entry, ok := field.SLAFor(label)
	if !ok {
		return nil
	}
	deadline := from.Add(time.Duration(entry.SLA) * time.Hour)
	return &deadline
}
