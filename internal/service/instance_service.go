package service

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/schema"
)

// InstanceStore is the persistence surface InstanceService needs.
type InstanceStore interface {
	GetTemplate(ctx context.Context, family schema.Family, id string) (*schema.Template, error)
	CreateInstance(ctx context.Context, inst *schema.Instance) error
	GetInstance(ctx context.Context, family schema.Family, id string) (*schema.Instance, error)
	ListInstancesByTemplate(ctx context.Context, family schema.Family, templateID string, limit, offset int) ([]*schema.Instance, int, error)
	ListElementsBySite(ctx context.Context, siteID string) ([]*schema.Instance, error)
	UpdateInstance(ctx context.Context, inst *schema.Instance) error
	DeleteInstance(ctx context.Context, family schema.Family, id string) error
	SetSiteElements(ctx context.Context, siteID string, elementIDs []string) error
}

// InstanceInput is the create/update payload for an instance.
type InstanceInput struct {
	Name   string          `json:"name"`
	Values schema.ValueSet `json:"values"`

	// ElementIDs attaches existing elements to a site; ignored for the
	// other families.
	ElementIDs []string `json:"elementIds,omitempty"`

	// Status closes or reopens a ticket; ignored for the other families.
	Status string `json:"status,omitempty"`
}

// SiteOverview is a site together with its attached elements grouped by
// their templates, the shape the site detail page renders.
type SiteOverview struct {
	Site     *schema.Instance             `json:"site"`
	Elements []*schema.Instance           `json:"elements"`
	Groups   map[string][]schema.Instance `json:"groups"`
}

// InstanceService handles instance lifecycle for all three families.
type InstanceService struct {
	store InstanceStore
	audit AuditSink
	now   func() time.Time
}

// NewInstanceService creates a new InstanceService.
func NewInstanceService(store InstanceStore, audit AuditSink) *InstanceService {
	return &InstanceService{store: store, audit: audit, now: time.Now}
}

// CreateFromTemplate validates the submitted values against the template
// and persists a new instance. Tickets open with an SLA deadline when the
// template carries an SLA table.
func (s *InstanceService) CreateFromTemplate(ctx context.Context, family schema.Family, templateID string, in InstanceInput, actor string) (*schema.Instance, error) {
	tpl, err := s.store.GetTemplate(ctx, family, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTemplateNotFound()
		}
		return nil, err
	}

	values := mergeValues(tpl.Fields, in.Values)
	if err := checkValues(tpl.Fields, values); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inst := &schema.Instance{
		ID:         newTemplateID(),
		Family:     family,
		TemplateID: tpl.ID,
		Name:       strings.TrimSpace(in.Name),
		Values:     values,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if inst.Name == "" {
		return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "instance name is required")
	}
	if family == schema.FamilyTicket {
		inst.Status = schema.StatusOpen
		inst.SLADeadline = schema.SLADeadlineFor(tpl, values, now)
	}

	if err := s.store.CreateInstance(ctx, inst); err != nil {
		return nil, err
	}

	if family == schema.FamilySite && len(in.ElementIDs) > 0 {
		if err := s.store.SetSiteElements(ctx, inst.ID, in.ElementIDs); err != nil {
			return nil, err
		}
	}

	s.recordInstance(ctx, "create", family, inst.ID, actor)
	return inst, nil
}

// Get fetches one instance with its values hydrated against the current
// template field list.
func (s *InstanceService) Get(ctx context.Context, family schema.Family, id string) (*schema.Instance, error) {
	inst, err := s.store.GetInstance(ctx, family, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInstanceNotFound()
		}
		return nil, err
	}
	if err := s.hydrate(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// ListByTemplate returns a page of instances for one template, values
// hydrated so every row exposes the template's current fields.
func (s *InstanceService) ListByTemplate(ctx context.Context, family schema.Family, templateID string, limit, offset int) ([]*schema.Instance, int, error) {
	tpl, err := s.store.GetTemplate(ctx, family, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.ErrTemplateNotFound()
		}
		return nil, 0, err
	}

	instances, total, err := s.store.ListInstancesByTemplate(ctx, family, templateID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, inst := range instances {
		inst.Values = schema.Hydrate(tpl.Fields, inst.Values)
	}
	return instances, total, nil
}

// UpdateFromTemplate replaces an instance's name and values, revalidating
// against the template. Ticket status and SLA deadline are recomputed.
func (s *InstanceService) UpdateFromTemplate(ctx context.Context, family schema.Family, id string, in InstanceInput, actor string) (*schema.Instance, error) {
	inst, err := s.store.GetInstance(ctx, family, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInstanceNotFound()
		}
		return nil, err
	}
	tpl, err := s.store.GetTemplate(ctx, family, inst.TemplateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTemplateNotFound()
		}
		return nil, err
	}

	values := mergeValues(tpl.Fields, in.Values)
	if err := checkValues(tpl.Fields, values); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		inst.Name = name
	}
	inst.Values = values
	inst.UpdatedAt = s.now().UTC()

	if family == schema.FamilyTicket {
		switch in.Status {
		case schema.StatusOpen, schema.StatusClosed:
			inst.Status = in.Status
		case "":
			// keep current status
		default:
			return nil, apperrors.BadRequest(apperrors.CodeInvalidRequest, "status must be open or closed")
		}
		inst.SLADeadline = schema.SLADeadlineFor(tpl, values, inst.CreatedAt)
	}

	if err := s.store.UpdateInstance(ctx, inst); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInstanceNotFound()
		}
		return nil, err
	}

	if family == schema.FamilySite && in.ElementIDs != nil {
		if err := s.store.SetSiteElements(ctx, inst.ID, in.ElementIDs); err != nil {
			return nil, err
		}
	}

	s.recordInstance(ctx, "update", family, inst.ID, actor)
	return inst, nil
}

// Delete removes an instance. Deleting a site detaches its elements
// through the site_id foreign key, it never deletes them.
func (s *InstanceService) Delete(ctx context.Context, family schema.Family, id string, actor string) error {
	if err := s.store.DeleteInstance(ctx, family, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInstanceNotFound()
		}
		return err
	}
	s.recordInstance(ctx, "delete", family, id, actor)
	return nil
}

// Overview assembles a site with its elements grouped per element
// template, pruning template groups that have no surviving element.
func (s *InstanceService) Overview(ctx context.Context, siteID string) (*SiteOverview, error) {
	site, err := s.Get(ctx, schema.FamilySite, siteID)
	if err != nil {
		return nil, err
	}

	elements, err := s.store.ListElementsBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	draft := schema.NewSiteDraft()
	templates := map[string]*schema.Template{}
	for _, el := range elements {
		tpl, ok := templates[el.TemplateID]
		if !ok {
			tpl, err = s.store.GetTemplate(ctx, schema.FamilyElement, el.TemplateID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					continue
				}
				return nil, err
			}
			templates[el.TemplateID] = tpl
		}
		el.Values = schema.Hydrate(tpl.Fields, el.Values)
		draft.Attach(*el, *tpl)
	}

	return &SiteOverview{
		Site:     site,
		Elements: elements,
		Groups:   draft.GroupByTemplate(),
	}, nil
}

func (s *InstanceService) hydrate(ctx context.Context, inst *schema.Instance) error {
	tpl, err := s.store.GetTemplate(ctx, inst.Family, inst.TemplateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Orphaned instance after a forced template removal; serve
			// the stored values untouched.
			return nil
		}
		return err
	}
	inst.Values = schema.Hydrate(tpl.Fields, inst.Values)
	return nil
}

func (s *InstanceService) recordInstance(ctx context.Context, operation string, family schema.Family, id, actor string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.LogInstanceChange(ctx, operation, string(family), id, actor)
}

// mergeValues starts from a blank value set in template field order and
// overlays the submitted values by key, so the stored set always has one
// entry per field regardless of what the client sent.
func mergeValues(fields []schema.FieldDefinition, submitted schema.ValueSet) schema.ValueSet {
	values := schema.Hydrate(fields, submitted)
	return values
}

// checkValues converts value validation failures into a single bad
// request carrying one field error per failing value.
func checkValues(fields []schema.FieldDefinition, values schema.ValueSet) error {
	errs := schema.ValidateValues(fields, values)
	if len(errs) == 0 {
		return nil
	}
	fieldErrs := make([]apperrors.FieldError, 0, len(errs))
	for _, ve := range errs {
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   ve.Key,
			Code:    ve.Code,
			Message: ve.Message,
		})
	}
	return apperrors.BadRequest(apperrors.CodeValueInvalid, "one or more values are invalid").
		WithFieldErrors(fieldErrs)
}
