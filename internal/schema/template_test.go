package schema

import "testing"

func newSiteTemplate() *Template {
	return &Template{
		ID:     "tpl-1",
		Family: FamilySite,
		Name:   "Cell Tower Site",
		Active: true,
	}
}

func TestTemplate_AddField(t *testing.T) {
	tpl := newSiteTemplate()

	f, err := tpl.AddField("Height", KindNumber, "", true, nil)
	if err != nil {
		t.Fatalf("AddField() error = %v", err)
	}
	if f == nil || f.ID == "" {
		t.Fatal("AddField() should assign a fresh id")
	}
	if len(tpl.Fields) != 1 {
		t.Fatalf("Fields len = %d, want 1", len(tpl.Fields))
	}
}

func TestTemplate_AddField_EmptyNameNoOps(t *testing.T) {
	tpl := newSiteTemplate()

	f, err := tpl.AddField("   ", KindString, "", false, nil)
	if err != nil {
		t.Fatalf("AddField() error = %v, want silent no-op", err)
	}
	if f != nil {
		t.Error("AddField() with empty name should return nil")
	}
	if len(tpl.Fields) != 0 {
		t.Errorf("Fields len = %d, want 0", len(tpl.Fields))
	}
}

func TestTemplate_AddField_SelectParsesOptions(t *testing.T) {
	tpl := newSiteTemplate()

	f, err := tpl.AddField("Status", KindSelect, " OK , Degraded ,, Down ", false, nil)
	if err != nil {
		t.Fatalf("AddField() error = %v", err)
	}
	want := []string{"OK", "Degraded", "Down"}
	if len(f.Options) != len(want) {
		t.Fatalf("Options = %v, want %v", f.Options, want)
	}
	for i := range want {
		if f.Options[i] != want[i] {
			t.Errorf("Options[%d] = %q, want %q", i, f.Options[i], want[i])
		}
	}
}

func TestTemplate_AddField_RejectsDuplicateName(t *testing.T) {
	tpl := newSiteTemplate()

	if _, err := tpl.AddField("Height", KindNumber, "", false, nil); err != nil {
		t.Fatalf("first AddField() error = %v", err)
	}
	if _, err := tpl.AddField("Height", KindString, "", false, nil); err == nil {
		t.Error("AddField() should reject a duplicate field name")
	}
}

func TestTemplate_AddField_RejectsTicketKindOnSite(t *testing.T) {
	tpl := newSiteTemplate()

	_, err := tpl.AddField("Prio", KindSlaPriority, "", false, &FieldExtras{
		SLAs: []SLAEntry{{PriorityLabel: "P1", SLA: 8}},
	})
	if err == nil {
		t.Error("AddField() should reject Sla-priority on a site template")
	}
}

func TestTemplate_AddField_TicketExtras(t *testing.T) {
	tpl := &Template{ID: "tpl-t", Family: FamilyTicket, Name: "Outage"}

	f, err := tpl.AddField("Window", KindDateRange, "", false, &FieldExtras{
		DateRange: &DateRangeSpec{StartName: "Outage start", EndName: "Outage end"},
	})
	if err != nil {
		t.Fatalf("AddField() error = %v", err)
	}
	if f.DateRange == nil || f.DateRange.StartName != "Outage start" {
		t.Errorf("DateRange = %+v, want staged labels attached", f.DateRange)
	}
}

func TestTemplate_UpdateField(t *testing.T) {
	tpl := newSiteTemplate()
	f, _ := tpl.AddField("Height", KindNumber, "", false, nil)

	edited := *f
	edited.Name = "Tower Height"
	edited.Required = true

	if !tpl.UpdateField(edited) {
		t.Fatal("UpdateField() = false, want true")
	}
	got, ok := tpl.FieldByID(f.ID)
	if !ok || got.Name != "Tower Height" || !got.Required {
		t.Errorf("after update: %+v", got)
	}

	if tpl.UpdateField(FieldDefinition{ID: "missing"}) {
		t.Error("UpdateField() with unknown id should return false")
	}
}

// Removing a field and submitting must yield exactly the remaining fields:
// update is a whole-document replace, nothing merges a removed field back.
func TestTemplate_RemoveField_ReplaceSemantics(t *testing.T) {
	tpl := newSiteTemplate()
	a, _ := tpl.AddField("A", KindString, "", false, nil)
	b, _ := tpl.AddField("B", KindString, "", false, nil)
	c, _ := tpl.AddField("C", KindString, "", false, nil)
	_ = a

	if !tpl.RemoveField(b.ID) {
		t.Fatal("RemoveField() = false, want true")
	}
	if len(tpl.Fields) != 2 {
		t.Fatalf("Fields len = %d, want 2", len(tpl.Fields))
	}
	if tpl.Fields[0].Name != "A" || tpl.Fields[1].Name != "C" {
		t.Errorf("Fields = [%s, %s], want [A, C]", tpl.Fields[0].Name, tpl.Fields[1].Name)
	}
	if tpl.RemoveField(c.ID); len(tpl.Fields) != 1 {
		t.Errorf("Fields len = %d, want 1", len(tpl.Fields))
	}
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tpl     Template
		wantErr bool
	}{
		{
			name: "valid",
			tpl: Template{
				Name: "T", Family: FamilySite,
				Fields: []FieldDefinition{{ID: "1", Name: "A", Kind: KindString}},
			},
		},
		{
			name:    "empty name",
			tpl:     Template{Name: " ", Family: FamilySite},
			wantErr: true,
		},
		{
			name:    "bad family",
			tpl:     Template{Name: "T", Family: "warehouse"},
			wantErr: true,
		},
		{
			name: "duplicate field names",
			tpl: Template{
				Name: "T", Family: FamilySite,
				Fields: []FieldDefinition{
					{ID: "1", Name: "A", Kind: KindString},
					{ID: "2", Name: "A", Kind: KindNumber},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tpl.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
