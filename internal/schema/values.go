package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value is one entry of an instance's value set: the field name it answers,
// the entered value, and a denormalized copy of the field's required flag
// and kind (the console's grid columns read these without re-fetching the
// template).
type Value struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Required  bool      `json:"required"`
	ValueType FieldKind `json:"valueType"`
}

// ValueSet is the ordered list of values on an instance, one per template
// field.
type ValueSet []Value

// DateRangeValue is the stored form of a DateRange field value.
type DateRangeValue struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Date layouts accepted for Date fields and DateRange endpoints.
const (
	dateLayout = "2006-01-02"
)

var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", dateLayout}

// NewValueSet builds the initial value set for instance creation: one empty
// entry per field, in field order.
func NewValueSet(fields []FieldDefinition) ValueSet {
	vs := make(ValueSet, 0, len(fields))
	for _, f := range fields {
		vs = append(vs, Value{
			Key:       f.Name,
			Value:     "",
			Required:  f.Required,
			ValueType: f.Kind,
		})
	}
	return vs
}

// Hydrate aligns a stored value set with the template's current field list.
// Values resolve by key; a positional fallback covers rows persisted before
// keys were recorded, so field reorders or deletions cannot shift values.
// Absent values default to empty. The result always has exactly one entry
// per field, in field order.
func Hydrate(fields []FieldDefinition, stored ValueSet) ValueSet {
	byKey := make(map[string]Value, len(stored))
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}
	for _, v := range stored {
		if _, exists := byKey[v.Key]; !exists {
			byKey[v.Key] = v
		}
	}

	vs := make(ValueSet, 0, len(fields))
	for i, f := range fields {
		out := Value{Key: f.Name, Required: f.Required, ValueType: f.Kind}
		if v, ok := byKey[f.Name]; ok {
			out.Value = v.Value
		} else if i < len(stored) {
			// Positional fallback: only taken when the stored entry's key is
			// not claimed by any current field.
			if _, claimed := known[stored[i].Key]; !claimed {
				out.Value = stored[i].Value
			}
		}
		vs = append(vs, out)
	}
	return vs
}

// Get returns the value stored under key.
func (vs ValueSet) Get(key string) (string, bool) {
	for _, v := range vs {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// WithValue returns a copy of the set with the entry for key replaced.
// The receiver is never mutated (map-and-replace, the same immutable-update
// discipline the console's form state uses).
func (vs ValueSet) WithValue(key, value string) ValueSet {
	out := make(ValueSet, len(vs))
	for i, v := range vs {
		if v.Key == key {
			v.Value = value
		}
		out[i] = v
	}
	return out
}

// ValueError describes why one value failed validation.
type ValueError struct {
	Key     string
	Code    string
	Message string
}

// Error implements the error interface.
func (e ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// Value error codes.
const (
	ValueCodeRequired       = "REQUIRED"
	ValueCodeNotANumber     = "NOT_A_NUMBER"
	ValueCodeInvalidDate    = "INVALID_DATE"
	ValueCodeNotAnOption    = "NOT_AN_OPTION"
	ValueCodeInvalidRange   = "INVALID_RANGE"
	ValueCodeEndBeforeStart = "END_BEFORE_START"
)

// ValidateValues checks a value set against the field list: required fields
// non-empty, numbers parse, dates parse, select and SLA choices are members
// of their catalogs, and date ranges end no earlier than they start. All
// failures are collected rather than stopping at the first.
func ValidateValues(fields []FieldDefinition, vs ValueSet) []ValueError {
	var errs []ValueError
	for _, f := range fields {
		raw, _ := vs.Get(f.Name)
		raw = strings.TrimSpace(raw)

		if raw == "" {
			if f.Required {
				errs = append(errs, ValueError{Key: f.Name, Code: ValueCodeRequired, Message: f.Name + " is required"})
			}
			continue
		}

		switch f.Kind {
		case KindNumber:
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				errs = append(errs, ValueError{Key: f.Name, Code: ValueCodeNotANumber, Message: f.Name + " must be a number"})
			}
		case KindDate:
			if _, err := time.Parse(dateLayout, raw); err != nil {
				errs = append(errs, ValueError{Key: f.Name, Code: ValueCodeInvalidDate, Message: f.Name + " must be a date (YYYY-MM-DD)"})
			}
		case KindSelect:
			if !f.HasOption(raw) {
				errs = append(errs, ValueError{Key: f.Name, Code: ValueCodeNotAnOption, Message: raw + " is not an option of " + f.Name})
			}
		case KindSlaPriority:
			if _, ok := f.SLAFor(raw); !ok {
				errs = append(errs, ValueError{Key: f.Name, Code: ValueCodeNotAnOption, Message: raw + " is not a priority of " + f.Name})
			}
		case KindDateRange:
			if verr := validateRange(f, raw); verr != nil {
				errs = append(errs, *verr)
			}
		}
	}
	return errs
}

func validateRange(f FieldDefinition, raw string) *ValueError {
	var rv DateRangeValue
	if err := json.Unmarshal([]byte(raw), &rv); err != nil {
		return &ValueError{Key: f.Name, Code: ValueCodeInvalidRange, Message: f.Name + " must be a {start, end} pair"}
	}
	start, okS := parseDateTime(rv.Start)
	end, okE := parseDateTime(rv.End)
	if !okS || !okE {
		return &ValueError{Key: f.Name, Code: ValueCodeInvalidRange, Message: f.Name + " has an unparseable start or end"}
	}
	if end.Before(start) {
		return &ValueError{Key: f.Name, Code: ValueCodeEndBeforeStart, Message: f.Name + " end must not be before start"}
	}
	return nil
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
