package schema

import "sort"

// SiteDraft tracks which elements (and their templates) are attached to a
// site while it is being edited. Elements and templates are id-keyed
// set-like lists; templates are kept sorted by name so the tabbed grouping
// downstream is stable. Nothing here touches the backend: a detach only
// persists when the enclosing site update is submitted with the final
// element list.
type SiteDraft struct {
	elements  []Instance
	templates []Template
}

// NewSiteDraft creates an empty draft.
func NewSiteDraft() *SiteDraft {
	return &SiteDraft{}
}

// Attach adds an element and its template to the draft. Both are
// deduplicated by id; re-attaching an already tracked element is a no-op.
func (d *SiteDraft) Attach(el Instance, tpl Template) {
	for _, e := range d.elements {
		if e.ID == el.ID {
			return
		}
	}
	d.elements = append(d.elements, el)

	tracked := false
	for _, t := range d.templates {
		if t.ID == tpl.ID {
			tracked = true
			break
		}
	}
	if !tracked {
		d.templates = append(d.templates, tpl)
		sort.Slice(d.templates, func(i, j int) bool {
			return d.templates[i].Name < d.templates[j].Name
		})
	}
	d.prune()
}

// Detach filters an element out of the draft by id. Templates left with no
// member elements are pruned.
func (d *SiteDraft) Detach(elementID string) {
	kept := d.elements[:0]
	for _, e := range d.elements {
		if e.ID != elementID {
			kept = append(kept, e)
		}
	}
	d.elements = kept
	d.prune()
}

// prune recomputes, from scratch, which templates still have member
// elements and drops the rest. Recomputing keeps the invariant trivially
// correct after any mutation.
func (d *SiteDraft) prune() {
	members := make(map[string]bool, len(d.elements))
	for _, e := range d.elements {
		members[e.TemplateID] = true
	}
	kept := d.templates[:0]
	for _, t := range d.templates {
		if members[t.ID] {
			kept = append(kept, t)
		}
	}
	d.templates = kept
}

// Elements returns the attached elements in attach order.
func (d *SiteDraft) Elements() []Instance {
	out := make([]Instance, len(d.elements))
	copy(out, d.elements)
	return out
}

// ElementIDs returns the attached element ids in attach order.
func (d *SiteDraft) ElementIDs() []string {
	ids := make([]string, 0, len(d.elements))
	for _, e := range d.elements {
		ids = append(ids, e.ID)
	}
	return ids
}

// Templates returns the tracked element templates sorted by name.
func (d *SiteDraft) Templates() []Template {
	out := make([]Template, len(d.templates))
	copy(out, d.templates)
	return out
}

// GroupByTemplate materializes the tabbed view: elements keyed by their
// template id.
func (d *SiteDraft) GroupByTemplate() map[string][]Instance {
	groups := make(map[string][]Instance, len(d.templates))
	for _, e := range d.elements {
		groups[e.TemplateID] = append(groups[e.TemplateID], e)
	}
	return groups
}
