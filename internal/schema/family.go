// Package schema implements the template/instance schema engine: templates
// define an ordered list of typed field definitions, and concrete records
// (sites, elements, tickets) carry one value per field, validated and
// rendered against that schema.
package schema

// Family identifies which entity family a template belongs to. The three
// families are structurally identical; the ticket family additionally allows
// the DateRange, Sla-priority and Editor field kinds.
type Family string

// Template families.
const (
	FamilySite    Family = "site"
	FamilyElement Family = "element"
	FamilyTicket  Family = "ticket"
)

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	switch f {
	case FamilySite, FamilyElement, FamilyTicket:
		return true
	}
	return false
}

// AllowedKinds returns the field kinds a template of this family may carry,
// in catalog order.
func (f Family) AllowedKinds() []FieldKind {
	base := []FieldKind{KindString, KindNumber, KindDate, KindSelect}
	if f == FamilyTicket {
		return append(base, KindDateRange, KindSlaPriority, KindEditor)
	}
	return base
}

// Allows reports whether the family permits the given field kind.
func (f Family) Allows(k FieldKind) bool {
	for _, allowed := range f.AllowedKinds() {
		if allowed == k {
			return true
		}
	}
	return false
}
