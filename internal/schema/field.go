package schema

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FieldKind is the type of a field definition. The wire names match what the
// console stores, including the historical "Sla-priority" spelling.
type FieldKind string

// Field kinds. String, Number, Date and Select are available to every
// family; DateRange, Sla-priority and Editor are ticket-only.
const (
	KindString      FieldKind = "String"
	KindNumber      FieldKind = "Number"
	KindDate        FieldKind = "Date"
	KindSelect      FieldKind = "Select"
	KindDateRange   FieldKind = "DateRange"
	KindSlaPriority FieldKind = "Sla-priority"
	KindEditor      FieldKind = "Editor"
)

// Valid reports whether k is a known field kind.
func (k FieldKind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindDate, KindSelect, KindDateRange, KindSlaPriority, KindEditor:
		return true
	}
	return false
}

// DateRangeSpec carries the custom labels for a paired start/end datetime
// field on ticket templates.
type DateRangeSpec struct {
	StartName     string `json:"startName"`
	EndName       string `json:"endName"`
	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
}

// SLAEntry maps a priority label to its turnaround time in hours.
type SLAEntry struct {
	PriorityLabel string `json:"priorityLabel"`
	SLA           int    `json:"sla"`
}

// FieldDefinition is one schema entry of a template: name, kind, required
// flag and the kind-specific payload. Exactly one of Options, DateRange and
// SLAs is meaningful, selected by Kind; Normalize enforces that so a Select
// field can never also carry an SLA table.
type FieldDefinition struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      FieldKind      `json:"type"`
	Required  bool           `json:"required"`
	Options   []string       `json:"options,omitempty"`
	DateRange *DateRangeSpec `json:"dateRange,omitempty"`
	SLAs      []SLAEntry     `json:"slas,omitempty"`
}

// NewFieldID returns a fresh unique field identifier.
func NewFieldID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ParseOptionsCSV splits a comma-separated option string, trimming entries
// and dropping empties. The operation is idempotent: parsing the re-joined
// result yields the same list.
func ParseOptionsCSV(s string) []string {
	parts := strings.Split(s, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		options = append(options, p)
	}
	return options
}

// JoinOptionsCSV renders options back to their comma-separated form.
func JoinOptionsCSV(options []string) string {
	return strings.Join(options, ",")
}

// Normalize clears any kind payload that does not belong to the field's
// kind, restoring the tagged-union invariant.
func (f *FieldDefinition) Normalize() {
	if f.Kind != KindSelect {
		f.Options = nil
	}
	if f.Kind != KindDateRange {
		f.DateRange = nil
	}
	if f.Kind != KindSlaPriority {
		f.SLAs = nil
	}
}

// Validate checks the definition against the owning template's family.
func (f FieldDefinition) Validate(fam Family) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field name must not be empty")
	}
	if !f.Kind.Valid() {
		return fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
	}
	if !fam.Allows(f.Kind) {
		return fmt.Errorf("field %q: kind %q is not allowed for %s templates", f.Name, f.Kind, fam)
	}
	switch f.Kind {
	case KindSelect:
		if len(f.Options) == 0 {
			return fmt.Errorf("field %q: select fields need at least one option", f.Name)
		}
	case KindDateRange:
		if f.DateRange == nil || f.DateRange.StartName == "" || f.DateRange.EndName == "" {
			return fmt.Errorf("field %q: date-range fields need start and end labels", f.Name)
		}
	case KindSlaPriority:
		if len(f.SLAs) == 0 {
			return fmt.Errorf("field %q: sla-priority fields need at least one priority entry", f.Name)
		}
		for _, e := range f.SLAs {
			if strings.TrimSpace(e.PriorityLabel) == "" {
				return fmt.Errorf("field %q: sla entry has empty priority label", f.Name)
			}
			if e.SLA <= 0 {
				return fmt.Errorf("field %q: sla for %q must be positive hours", f.Name, e.PriorityLabel)
			}
		}
	}
	return nil
}

// SLAFor looks up the SLA entry for a priority label on an Sla-priority
// field. The second return is false when the label is not in the table.
func (f FieldDefinition) SLAFor(priorityLabel string) (SLAEntry, bool) {
	for _, e := range f.SLAs {
		if e.PriorityLabel == priorityLabel {
			return e, true
		}
	}
	return SLAEntry{}, false
}

// HasOption reports whether v is one of the field's select options.
func (f FieldDefinition) HasOption(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}
