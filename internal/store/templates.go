package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sidyfoba/solarcom-console/internal/schema"
)

const templateColumns = "id, family, name, description, icon, active, fields, created_at, updated_at"

// CreateTemplate inserts a new template.
func (s *Store) CreateTemplate(ctx context.Context, t *schema.Template) error {
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO templates (id, family, name, description, icon, active, fields)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, string(t.Family), t.Name, t.Description, t.Icon, t.Active, fields,
	)
	return mapErr("create template", err)
}

// GetTemplate fetches one template by family and id.
func (s *Store) GetTemplate(ctx context.Context, family schema.Family, id string) (*schema.Template, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM templates
		WHERE family = $1 AND id = $2`,
		string(family), id,
	)
	return scanTemplate(row)
}

// ListTemplates returns a page of templates for a family, newest first, plus
// the total count.
func (s *Store) ListTemplates(ctx context.Context, family schema.Family, limit, offset int) ([]*schema.Template, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM templates WHERE family = $1`, string(family),
	).Scan(&total); err != nil {
		return nil, 0, mapErr("count templates", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+templateColumns+`
		FROM templates
		WHERE family = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		string(family), limit, offset,
	)
	if err != nil {
		return nil, 0, mapErr("list templates", err)
	}
	defer rows.Close()

	var templates []*schema.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		templates = append(templates, t)
	}
	return templates, total, mapErr("list templates", rows.Err())
}

// UpdateTemplate replaces the whole stored document with the given one.
// Any field absent from t.Fields is gone after this call; there is no
// server-side merge.
func (s *Store) UpdateTemplate(ctx context.Context, t *schema.Template) error {
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE templates
		SET name = $3, description = $4, icon = $5, active = $6, fields = $7, updated_at = now()
		WHERE family = $1 AND id = $2`,
		string(t.Family), t.ID, t.Name, t.Description, t.Icon, t.Active, fields,
	)
	if err != nil {
		return mapErr("update template", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("update template", errNoRowsAffected)
	}
	return nil
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, family schema.Family, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM templates WHERE family = $1 AND id = $2`,
		string(family), id,
	)
	if err != nil {
		return mapErr("delete template", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("delete template", errNoRowsAffected)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*schema.Template, error) {
	var (
		t      schema.Template
		family string
		fields []byte
	)
	if err := row.Scan(&t.ID, &family, &t.Name, &t.Description, &t.Icon, &t.Active, &fields, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapErr("scan template", err)
	}
	t.Family = schema.Family(family)
	if err := json.Unmarshal(fields, &t.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return &t, nil
}
