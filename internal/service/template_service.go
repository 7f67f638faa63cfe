// Package service holds the business logic between the HTTP handlers and
// the repositories. Services depend on narrow store interfaces so tests
// can run against in-memory fakes.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/schema"
)

// TemplateStore is the persistence surface TemplateService needs.
type TemplateStore interface {
	CreateTemplate(ctx context.Context, t *schema.Template) error
	GetTemplate(ctx context.Context, family schema.Family, id string) (*schema.Template, error)
	ListTemplates(ctx context.Context, family schema.Family, limit, offset int) ([]*schema.Template, int, error)
	UpdateTemplate(ctx context.Context, t *schema.Template) error
	DeleteTemplate(ctx context.Context, family schema.Family, id string) error
	CountInstancesByTemplate(ctx context.Context, templateID string) (int, error)
}

// AuditSink records administrative mutations. Audit failures are logged
// but never fail the mutation itself.
type AuditSink interface {
	LogTemplateChange(ctx context.Context, operation, family, templateID, actor string) error
	LogInstanceChange(ctx context.Context, operation, family, instanceID, actor string) error
}

// FieldInput is one field definition as submitted by the authoring form.
// An empty ID means a new field; Options is the raw comma-separated string.
type FieldInput struct {
	ID        string                `json:"id,omitempty"`
	Name      string                `json:"name"`
	Kind      schema.FieldKind      `json:"type"`
	Required  bool                  `json:"required"`
	Options   string                `json:"options,omitempty"`
	DateRange *schema.DateRangeSpec `json:"dateRange,omitempty"`
	SLAs      []schema.SLAEntry     `json:"slas,omitempty"`
}

// TemplateInput is the create/update payload for a template.
type TemplateInput struct {
	Name        string       `json:"templateName"`
	Description string       `json:"description"`
	Icon        string       `json:"icon,omitempty"`
	Active      bool         `json:"active"`
	Fields      []FieldInput `json:"fields"`
}

// TemplateService handles template CRUD for all three families.
type TemplateService struct {
	store TemplateStore
	audit AuditSink
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(store TemplateStore, audit AuditSink) *TemplateService {
	return &TemplateService{store: store, audit: audit}
}

// Create validates and persists a new template.
func (s *TemplateService) Create(ctx context.Context, family schema.Family, in TemplateInput, actor string) (*schema.Template, error) {
	tpl := &schema.Template{
		ID:          newTemplateID(),
		Family:      family,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        in.Icon,
		Active:      in.Active,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := applyFieldInputs(tpl, in.Fields); err != nil {
		return nil, err
	}
	if err := tpl.Validate(); err != nil {
		return nil, apperrors.BadRequest(apperrors.CodeValidationFailed, err.Error())
	}

	if err := s.store.CreateTemplate(ctx, tpl); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.Conflict(apperrors.CodeTemplateExists,
				fmt.Sprintf("template %q already exists for family %s", tpl.Name, family))
		}
		return nil, err
	}

	s.recordTemplate(ctx, "create", family, tpl.ID, actor)
	return tpl, nil
}

// Get fetches one template.
func (s *TemplateService) Get(ctx context.Context, family schema.Family, id string) (*schema.Template, error) {
	tpl, err := s.store.GetTemplate(ctx, family, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTemplateNotFound()
		}
		return nil, err
	}
	return tpl, nil
}

// List returns a page of templates for a family, newest first.
func (s *TemplateService) List(ctx context.Context, family schema.Family, limit, offset int) ([]*schema.Template, int, error) {
	return s.store.ListTemplates(ctx, family, limit, offset)
}

// Update replaces a template's metadata and field list. Incoming fields
// keep their existing IDs; fields without one are treated as new.
func (s *TemplateService) Update(ctx context.Context, family schema.Family, id string, in TemplateInput, actor string) (*schema.Template, error) {
	existing, err := s.Get(ctx, family, id)
	if err != nil {
		return nil, err
	}

	tpl := &schema.Template{
		ID:          existing.ID,
		Family:      family,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        in.Icon,
		Active:      in.Active,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := applyFieldInputs(tpl, in.Fields); err != nil {
		return nil, err
	}
	if err := tpl.Validate(); err != nil {
		return nil, apperrors.BadRequest(apperrors.CodeValidationFailed, err.Error())
	}

	if err := s.store.UpdateTemplate(ctx, tpl); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTemplateNotFound()
		}
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.Conflict(apperrors.CodeTemplateExists,
				fmt.Sprintf("template %q already exists for family %s", tpl.Name, family))
		}
		return nil, err
	}

	s.recordTemplate(ctx, "update", family, tpl.ID, actor)
	return tpl, nil
}

// Delete removes a template. Refused with a conflict while instances
// still reference it.
func (s *TemplateService) Delete(ctx context.Context, family schema.Family, id string, actor string) error {
	count, err := s.store.CountInstancesByTemplate(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrTemplateInUse()
	}

	if err := s.store.DeleteTemplate(ctx, family, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrTemplateNotFound()
		}
		return err
	}

	s.recordTemplate(ctx, "delete", family, id, actor)
	return nil
}

func (s *TemplateService) recordTemplate(ctx context.Context, operation string, family schema.Family, id, actor string) {
	if s.audit == nil {
		return
	}
	// Audit failure is already logged inside the audit logger.
	_ = s.audit.LogTemplateChange(ctx, operation, string(family), id, actor)
}

// applyFieldInputs rebuilds the template's field list from form input.
// Fields arriving with an ID keep it so stored values hydrate cleanly.
func applyFieldInputs(tpl *schema.Template, inputs []FieldInput) error {
	for _, in := range inputs {
		added, err := tpl.AddField(in.Name, in.Kind, in.Options, in.Required, &schema.FieldExtras{
			DateRange: in.DateRange,
			SLAs:      in.SLAs,
		})
		if err != nil {
			return apperrors.BadRequest(apperrors.CodeValidationFailed, err.Error())
		}
		if added != nil && in.ID != "" {
			added.ID = in.ID
		}
	}
	return nil
}

func newTemplateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
