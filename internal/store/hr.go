package store

import (
	"context"
	"time"
)

// Employee is an HR staff record. Job position and team references are
// optional.
type Employee struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	JobPositionID string    `json:"jobPositionId,omitempty"`
	TeamID        string    `json:"teamId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Team is a named group of employees.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobPosition is a role catalog entry.
type JobPosition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

const employeeColumns = "id, first_name, last_name, email, phone, job_position_id, team_id, created_at, updated_at"

// CreateEmployee inserts a new employee.
func (s *Store) CreateEmployee(ctx context.Context, e *Employee) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO employees (id, first_name, last_name, email, phone, job_position_id, team_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.JobPositionID, e.TeamID,
	)
	return mapErr("create employee", err)
}

// GetEmployee fetches one employee.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

// ListEmployees returns all employees, newest first.
func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]*Employee, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, mapErr("count employees", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+` FROM employees
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapErr("list employees", err)
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, mapErr("list employees", rows.Err())
}

// UpdateEmployee replaces an employee's editable fields.
func (s *Store) UpdateEmployee(ctx context.Context, e *Employee) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    job_position_id = NULLIF($6, ''), team_id = NULLIF($7, ''), updated_at = now()
		WHERE id = $1`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.JobPositionID, e.TeamID,
	)
	if err != nil {
		return mapErr("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("update employee", errNoRowsAffected)
	}
	return nil
}

// DeleteEmployee removes an employee.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("delete employee", errNoRowsAffected)
	}
	return nil
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var (
		e        Employee
		position *string
		team     *string
	)
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &position, &team, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapErr("scan employee", err)
	}
	if position != nil {
		e.JobPositionID = *position
	}
	if team != nil {
		e.TeamID = *team
	}
	return &e, nil
}

// CreateTeam inserts a new team.
func (s *Store) CreateTeam(ctx context.Context, t *Team) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO teams (id, name, description) VALUES ($1, $2, $3)`,
		t.ID, t.Name, t.Description,
	)
	return mapErr("create team", err)
}

// ListTeams returns all teams ordered by name.
func (s *Store) ListTeams(ctx context.Context) ([]*Team, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, created_at FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, mapErr("list teams", err)
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, mapErr("scan team", err)
		}
		teams = append(teams, &t)
	}
	return teams, mapErr("list teams", rows.Err())
}

// UpdateTeam replaces a team's editable fields.
func (s *Store) UpdateTeam(ctx context.Context, t *Team) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE teams SET name = $2, description = $3 WHERE id = $1`,
		t.ID, t.Name, t.Description,
	)
	if err != nil {
		return mapErr("update team", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("update team", errNoRowsAffected)
	}
	return nil
}

// DeleteTeam removes a team; member employees keep working, unassigned.
func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete team", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("delete team", errNoRowsAffected)
	}
	return nil
}

// CreateJobPosition inserts a new job position.
func (s *Store) CreateJobPosition(ctx context.Context, j *JobPosition) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO job_positions (id, title, description) VALUES ($1, $2, $3)`,
		j.ID, j.Title, j.Description,
	)
	return mapErr("create job position", err)
}

// ListJobPositions returns all job positions ordered by title.
func (s *Store) ListJobPositions(ctx context.Context) ([]*JobPosition, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, created_at FROM job_positions ORDER BY title ASC`)
	if err != nil {
		return nil, mapErr("list job positions", err)
	}
	defer rows.Close()

	var positions []*JobPosition
	for rows.Next() {
		var j JobPosition
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.CreatedAt); err != nil {
			return nil, mapErr("scan job position", err)
		}
		positions = append(positions, &j)
	}
	return positions, mapErr("list job positions", rows.Err())
}

// UpdateJobPosition replaces a job position's editable fields.
func (s *Store) UpdateJobPosition(ctx context.Context, j *JobPosition) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_positions SET title = $2, description = $3 WHERE id = $1`,
		j.ID, j.Title, j.Description,
	)
	if err != nil {
		return mapErr("update job position", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("update job position", errNoRowsAffected)
	}
	return nil
}

// DeleteJobPosition removes a job position.
func (s *Store) DeleteJobPosition(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM job_positions WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete job position", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("delete job position", errNoRowsAffected)
	}
	return nil
}
