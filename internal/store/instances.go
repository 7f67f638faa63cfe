package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sidyfoba/solarcom-console/internal/schema"
)

const instanceColumns = "id, family, template_id, name, vals, site_id, status, sla_deadline, sla_breached, created_at, updated_at"

// CreateInstance inserts a new instance.
func (s *Store) CreateInstance(ctx context.Context, inst *schema.Instance) error {
	vals, err := json.Marshal(inst.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO instances (id, family, template_id, name, vals, site_id, status, sla_deadline)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		inst.ID, string(inst.Family), inst.TemplateID, inst.Name, vals, inst.SiteID, inst.Status, inst.SLADeadline,
	)
	return mapErr("create instance", err)
}

// GetInstance fetches one instance by family and id.
func (s *Store) GetInstance(ctx context.Context, family schema.Family, id string) (*schema.Instance, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+instanceColumns+`
		FROM instances
		WHERE family = $1 AND id = $2`,
		string(family), id,
	)
	return scanInstance(row)
}

// ListInstancesByTemplate returns a page of a template's instances, newest
// first, plus the total count.
func (s *Store) ListInstancesByTemplate(ctx context.Context, family schema.Family, templateID string, limit, offset int) ([]*schema.Instance, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM instances WHERE family = $1 AND template_id = $2`,
		string(family), templateID,
	).Scan(&total); err != nil {
		return nil, 0, mapErr("count instances", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+instanceColumns+`
		FROM instances
		WHERE family = $1 AND template_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		string(family), templateID, limit, offset,
	)
	if err != nil {
		return nil, 0, mapErr("list instances", err)
	}
	defer rows.Close()

	return collectInstances(rows, total)
}

// ListElementsBySite returns every element attached to a site, in creation
// order.
func (s *Store) ListElementsBySite(ctx context.Context, siteID string) ([]*schema.Instance, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+instanceColumns+`
		FROM instances
		WHERE family = $1 AND site_id = $2
		ORDER BY created_at ASC`,
		string(schema.FamilyElement), siteID,
	)
	if err != nil {
		return nil, mapErr("list site elements", err)
	}
	defer rows.Close()

	elements, _, err := collectInstances(rows, 0)
	return elements, err
}

// UpdateInstance replaces the whole stored document (full replace, the
// template back-reference passes through unchanged).
func (s *Store) UpdateInstance(ctx context.Context, inst *schema.Instance) error {
	vals, err := json.Marshal(inst.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE instances
		SET name = $3, vals = $4, status = $5, sla_deadline = $6, sla_breached = $7, updated_at = now()
		WHERE family = $1 AND id = $2`,
		string(inst.Family), inst.ID, inst.Name, vals, inst.Status, inst.SLADeadline, inst.SLABreached,
	)
	if err != nil {
		return mapErr("update instance", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("update instance", errNoRowsAffected)
	}
	return nil
}

// DeleteInstance removes an instance.
func (s *Store) DeleteInstance(ctx context.Context, family schema.Family, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM instances WHERE family = $1 AND id = $2`,
		string(family), id,
	)
	if err != nil {
		return mapErr("delete instance", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("delete instance", errNoRowsAffected)
	}
	return nil
}

// SetSiteElements atomically reassigns the set of elements owned by a site:
// elements no longer in the list are detached, listed ones attached. Matches
// the console's submit semantics where the full element list rides on the
// site update payload.
func (s *Store) SetSiteElements(ctx context.Context, siteID string, elementIDs []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapErr("set site elements", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE instances SET site_id = NULL, updated_at = now()
		WHERE family = $1 AND site_id = $2`,
		string(schema.FamilyElement), siteID,
	); err != nil {
		return mapErr("detach site elements", err)
	}

	if len(elementIDs) > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE instances SET site_id = $2, updated_at = now()
			WHERE family = $1 AND id = ANY($3)`,
			string(schema.FamilyElement), siteID, elementIDs,
		); err != nil {
			return mapErr("attach site elements", err)
		}
	}

	return mapErr("set site elements", tx.Commit(ctx))
}

// CountInstancesByTemplate reports how many instances reference a template.
// Template deletion is refused while this is non-zero.
func (s *Store) CountInstancesByTemplate(ctx context.Context, templateID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM instances WHERE template_id = $1`, templateID,
	).Scan(&n)
	return n, mapErr("count instances by template", err)
}

// ListOverdueOpenTickets returns open, not-yet-flagged tickets whose SLA
// deadline has passed.
func (s *Store) ListOverdueOpenTickets(ctx context.Context, now time.Time) ([]*schema.Instance, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+instanceColumns+`
		FROM instances
		WHERE family = $1 AND status = $2 AND sla_breached = FALSE
		  AND sla_deadline IS NOT NULL AND sla_deadline < $3
		ORDER BY sla_deadline ASC`,
		string(schema.FamilyTicket), schema.StatusOpen, now,
	)
	if err != nil {
		return nil, mapErr("list overdue tickets", err)
	}
	defer rows.Close()

	tickets, _, err := collectInstances(rows, 0)
	return tickets, err
}

// MarkSLABreached flags a ticket as past its SLA so the scan reports it only
// once.
func (s *Store) MarkSLABreached(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE instances SET sla_breached = TRUE, updated_at = now() WHERE id = $1`, id,
	)
	return mapErr("mark sla breached", err)
}

func scanInstance(row rowScanner) (*schema.Instance, error) {
	var (
		inst   schema.Instance
		family string
		vals   []byte
		siteID *string
	)
	if err := row.Scan(
		&inst.ID, &family, &inst.TemplateID, &inst.Name, &vals, &siteID,
		&inst.Status, &inst.SLADeadline, &inst.SLABreached, &inst.CreatedAt, &inst.UpdatedAt,
	); err != nil {
		return nil, mapErr("scan instance", err)
	}
	inst.Family = schema.Family(family)
	if siteID != nil {
		inst.SiteID = *siteID
	}
	if err := json.Unmarshal(vals, &inst.Values); err != nil {
		return nil, fmt.Errorf("unmarshal values: %w", err)
	}
	return &inst, nil
}

type pgxRows interface {
	rowScanner
	Next() bool
	Err() error
}

func collectInstances(rows pgxRows, total int) ([]*schema.Instance, int, error) {
	var instances []*schema.Instance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, 0, err
		}
		instances = append(instances, inst)
	}
	return instances, total, mapErr("collect instances", rows.Err())
}
