package schema

import (
	"fmt"
	"strings"
	"time"
)

// Template is a named, ordered schema of field definitions shared by many
// instances. Field order determines render and column order downstream.
type Template struct {
	ID          string            `json:"id"`
	Family      Family            `json:"family"`
	Name        string            `json:"templateName"`
	Description string            `json:"description"`
	Icon        string            `json:"icon,omitempty"`
	Active      bool              `json:"active"`
	Fields      []FieldDefinition `json:"fields"`
	CreatedAt   time.Time         `json:"createdAt,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty"`
}

// FieldExtras carries the staged kind-specific payload a field authoring
// form accumulates before the field is added.
type FieldExtras struct {
	DateRange *DateRangeSpec
	SLAs      []SLAEntry
}

// AddField appends a new field definition. An empty (trimmed) name is a
// silent no-op, matching the console's authoring behaviour; the returned
// pointer is nil in that case. Select options are parsed from optionsCSV.
// A duplicate field name or a kind the family does not allow is an error:
// key-based value resolution depends on names being unique.
func (t *Template) AddField(name string, kind FieldKind, optionsCSV string, required bool, extras *FieldExtras) (*FieldDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	f := FieldDefinition{
		ID:       NewFieldID(),
		Name:     name,
		Kind:     kind,
		Required: required,
	}
	switch kind {
	case KindSelect:
		f.Options = ParseOptionsCSV(optionsCSV)
	case KindDateRange:
		if extras != nil {
			f.DateRange = extras.DateRange
		}
	case KindSlaPriority:
		if extras != nil {
			f.SLAs = extras.SLAs
		}
	}
	f.Normalize()

	if err := f.Validate(t.Family); err != nil {
		return nil, err
	}
	if _, ok := t.FieldByName(name); ok {
		return nil, fmt.Errorf("field name %q already exists in template", name)
	}

	t.Fields = append(t.Fields, f)
	return &t.Fields[len(t.Fields)-1], nil
}

// UpdateField merges an edited definition back into the field list by id
// match. Returns false when no field with that id exists.
func (t *Template) UpdateField(edited FieldDefinition) bool {
	for i, f := range t.Fields {
		if f.ID != edited.ID {
			continue
		}
		edited.Normalize()
		t.Fields[i] = edited
		return true
	}
	return false
}

// RemoveField filters a field out of the list by id. Returns false when no
// field with that id exists.
func (t *Template) RemoveField(id string) bool {
	for i, f := range t.Fields {
		if f.ID != id {
			continue
		}
		t.Fields = append(t.Fields[:i], t.Fields[i+1:]...)
		return true
	}
	return false
}

// FieldByName returns the field definition with the given name.
func (t *Template) FieldByName(name string) (FieldDefinition, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// FieldByID returns the field definition with the given id.
func (t *Template) FieldByID(id string) (FieldDefinition, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// SLAField returns the template's Sla-priority field, if any. At most one is
// expected; the first wins.
func (t *Template) SLAField() (FieldDefinition, bool) {
	for _, f := range t.Fields {
		if f.Kind == KindSlaPriority {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Validate checks the template as a whole: non-empty name, valid family,
// every field valid for the family, no duplicate field names.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template name must not be empty")
	}
	if !t.Family.Valid() {
		return fmt.Errorf("unknown template family %q", t.Family)
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if err := f.Validate(t.Family); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
