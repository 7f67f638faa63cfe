package store

import (
	"context"
	"time"
)

// Project is a telecom rollout project record.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

const projectColumns = "id, name, description, status, start_date, end_date, created_at, updated_at"

// CreateProject inserts a new project.
func (s *Store) CreateProject(ctx context.Context, p *Project) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO projects (id, name, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
	)
	return mapErr("create project", err)
}

// GetProject fetches one project.
func (s *Store) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr("get project", err)
	}
	return &p, nil
}

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects(ctx context.Context, limit, offset int) ([]*Project, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, mapErr("count projects", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapErr("list projects", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, mapErr("scan project", err)
		}
		projects = append(projects, &p)
	}
	return projects, total, mapErr("list projects", rows.Err())
}

// UpdateProject replaces a project's editable fields.
func (s *Store) UpdateProject(ctx context.Context, p *Project) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE projects
		SET name = $2, description = $3, status = $4, start_date = $5, end_date = $6, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
	)
	if err != nil {
		return mapErr("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("update project", errNoRowsAffected)
	}
	return nil
}

// DeleteProject removes a project.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("delete project", errNoRowsAffected)
	}
	return nil
}
