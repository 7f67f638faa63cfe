package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/schema"
)

func seedTemplate(t *testing.T, fs *fakeStore, family schema.Family, in TemplateInput) *schema.Template {
	t.Helper()
	tpl, err := NewTemplateService(fs, nil).Create(context.Background(), family, in, "admin")
	require.NoError(t, err)
	return tpl
}

func ticketTemplateInput() TemplateInput {
	return TemplateInput{
		Name:   "Outage Ticket",
		Active: true,
		Fields: []FieldInput{
			{Name: "Summary", Kind: schema.KindString, Required: true},
			{Name: "Priority", Kind: schema.KindSlaPriority, SLAs: []schema.SLAEntry{
				{PriorityLabel: "Critical", SLA: 4},
				{PriorityLabel: "Minor", SLA: 72},
			}},
		},
	}
}

func TestInstanceService_CreateFromTemplate(t *testing.T) {
	fs := newFakeStore()
	tpl := seedTemplate(t, fs, schema.FamilySite, siteTemplateInput())
	svc := NewInstanceService(fs, &fakeAudit{})

	inst, err := svc.CreateFromTemplate(context.Background(), schema.FamilySite, tpl.ID, InstanceInput{
		Name: "SITE-001",
		Values: schema.ValueSet{
			{Key: "Site Code", Value: "S-001"},
			{Key: "Region", Value: "North"},
		},
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, tpl.ID, inst.TemplateID)

	// One value per template field, in field order, even for fields the
	// client never sent.
	require.Len(t, inst.Values, 3)
	require.Equal(t, "Site Code", inst.Values[0].Key)
	require.Equal(t, "", inst.Values[2].Value)
}

func TestInstanceService_CreateFromTemplate_InvalidValues(t *testing.T) {
	fs := newFakeStore()
	tpl := seedTemplate(t, fs, schema.FamilySite, siteTemplateInput())
	svc := NewInstanceService(fs, nil)

	_, err := svc.CreateFromTemplate(context.Background(), schema.FamilySite, tpl.ID, InstanceInput{
		Name: "SITE-002",
		Values: schema.ValueSet{
			{Key: "Region", Value: "West"},
			{Key: "Height", Value: "tall"},
		},
	}, "admin")
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeValueInvalid, appErr.Code)

	// All failures surface at once: missing required, unknown option,
	// non-numeric number.
	require.Len(t, appErr.FieldErrors, 3)
}

func TestInstanceService_CreateFromTemplate_TemplateMissing(t *testing.T) {
	svc := NewInstanceService(newFakeStore(), nil)

	_, err := svc.CreateFromTemplate(context.Background(), schema.FamilySite, "missing", InstanceInput{Name: "x"}, "admin")
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeTemplateNotFound, appErr.Code)
}

func TestInstanceService_TicketGetsSLADeadline(t *testing.T) {
	fs := newFakeStore()
	tpl := seedTemplate(t, fs, schema.FamilyTicket, ticketTemplateInput())
	svc := NewInstanceService(fs, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	inst, err := svc.CreateFromTemplate(context.Background(), schema.FamilyTicket, tpl.ID, InstanceInput{
		Name: "TCK-001",
		Values: schema.ValueSet{
			{Key: "Summary", Value: "Power outage"},
			{Key: "Priority", Value: "Critical"},
		},
	}, "noc")
	require.NoError(t, err)
	require.Equal(t, schema.StatusOpen, inst.Status)
	require.NotNil(t, inst.SLADeadline)
	require.Equal(t, time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC), *inst.SLADeadline)
}

func TestInstanceService_UpdateRecomputesSLADeadline(t *testing.T) {
	fs := newFakeStore()
	tpl := seedTemplate(t, fs, schema.FamilyTicket, ticketTemplateInput())
	svc := NewInstanceService(fs, nil)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	inst, err := svc.CreateFromTemplate(context.Background(), schema.FamilyTicket, tpl.ID, InstanceInput{
		Name: "TCK-002",
		Values: schema.ValueSet{
			{Key: "Summary", Value: "Degraded service"},
			{Key: "Priority", Value: "Critical"},
		},
	}, "noc")
	require.NoError(t, err)

	svc.now = func() time.Time { return created.Add(2 * time.Hour) }
	updated, err := svc.UpdateFromTemplate(context.Background(), schema.FamilyTicket, inst.ID, InstanceInput{
		Values: schema.ValueSet{
			{Key: "Summary", Value: "Degraded service"},
			{Key: "Priority", Value: "Minor"},
		},
		Status: schema.StatusClosed,
	}, "noc")
	require.NoError(t, err)
	require.Equal(t, schema.StatusClosed, updated.Status)

	// Deadline anchors at creation time, not update time.
	require.Equal(t, created.Add(72*time.Hour), *updated.SLADeadline)
}

func TestInstanceService_UpdateRejectsUnknownStatus(t *testing.T) {
	fs := newFakeStore()
	tpl := seedTemplate(t, fs, schema.FamilyTicket, ticketTemplateInput())
	svc := NewInstanceService(fs, nil)

	inst, err := svc.CreateFromTemplate(context.Background(), schema.FamilyTicket, tpl.ID, InstanceInput{
		Name:   "TCK-003",
		Values: schema.ValueSet{{Key: "Summary", Value: "x"}},
	}, "noc")
	require.NoError(t, err)

	_, err = svc.UpdateFromTemplate(context.Background(), schema.FamilyTicket, inst.ID, InstanceInput{
		Values: schema.ValueSet{{Key: "Summary", Value: "x"}},
		Status: "paused",
	}, "noc")
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeInvalidRequest, appErr.Code)
}

func TestInstanceService_SiteOverviewGroupsElements(t *testing.T) {
	fs := newFakeStore()
	siteTpl := seedTemplate(t, fs, schema.FamilySite, siteTemplateInput())
	elTpl := seedTemplate(t, fs, schema.FamilyElement, TemplateInput{
		Name:   "Antenna",
		Active: true,
		Fields: []FieldInput{{Name: "Model", Kind: schema.KindString}},
	})
	svc := NewInstanceService(fs, nil)

	el1, err := svc.CreateFromTemplate(context.Background(), schema.FamilyElement, elTpl.ID, InstanceInput{Name: "ANT-1"}, "admin")
	require.NoError(t, err)
	el2, err := svc.CreateFromTemplate(context.Background(), schema.FamilyElement, elTpl.ID, InstanceInput{Name: "ANT-2"}, "admin")
	require.NoError(t, err)

	site, err := svc.CreateFromTemplate(context.Background(), schema.FamilySite, siteTpl.ID, InstanceInput{
		Name:       "SITE-010",
		Values:     schema.ValueSet{{Key: "Site Code", Value: "S-010"}},
		ElementIDs: []string{el1.ID, el2.ID},
	}, "admin")
	require.NoError(t, err)

	overview, err := svc.Overview(context.Background(), site.ID)
	require.NoError(t, err)
	require.Len(t, overview.Elements, 2)
	require.Len(t, overview.Groups[elTpl.ID], 2)

	// Detaching both elements drops the template group entirely.
	_, err = svc.UpdateFromTemplate(context.Background(), schema.FamilySite, site.ID, InstanceInput{
		Values:     schema.ValueSet{{Key: "Site Code", Value: "S-010"}},
		ElementIDs: []string{},
	}, "admin")
	require.NoError(t, err)

	overview, err = svc.Overview(context.Background(), site.ID)
	require.NoError(t, err)
	require.Empty(t, overview.Elements)
	require.Empty(t, overview.Groups)
}

func TestInstanceService_DeleteSiteKeepsElements(t *testing.T) {
	fs := newFakeStore()
	siteTpl := seedTemplate(t, fs, schema.FamilySite, siteTemplateInput())
	elTpl := seedTemplate(t, fs, schema.FamilyElement, TemplateInput{
		Name:   "Cabinet",
		Active: true,
		Fields: []FieldInput{{Name: "Model", Kind: schema.KindString}},
	})
	svc := NewInstanceService(fs, nil)

	el, err := svc.CreateFromTemplate(context.Background(), schema.FamilyElement, elTpl.ID, InstanceInput{Name: "CAB-1"}, "admin")
	require.NoError(t, err)
	site, err := svc.CreateFromTemplate(context.Background(), schema.FamilySite, siteTpl.ID, InstanceInput{
		Name:       "SITE-011",
		Values:     schema.ValueSet{{Key: "Site Code", Value: "S-011"}},
		ElementIDs: []string{el.ID},
	}, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), schema.FamilySite, site.ID, "admin"))

	survivor, err := svc.Get(context.Background(), schema.FamilyElement, el.ID)
	require.NoError(t, err)
	require.Empty(t, survivor.SiteID)
}
