package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Insert stores a new project. The database assigns id and created_at.
func (r *ProjectRepository) Insert(ctx context.Context, p domain.ProjectPayload) (*domain.Project, error) {
	const q = `
INSERT INTO projects (name, description, github_links, demo_link, tags)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at;
`
	out := &domain.Project{}
	out.Apply(p)

	err := r.db.QueryRowContext(ctx, q, p.Name, p.Description, pq.Array(p.GithubLinks), p.DemoLink, pq.Array(p.Tags)).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return out, nil
}

// Update replaces the mutable fields of the project with the given id.
// It reports whether a row matched.
func (r *ProjectRepository) Update(ctx context.Context, id string, p domain.ProjectPayload) (bool, error) {
	const q = `
UPDATE projects
SET name = $2, description = $3, github_links = $4, demo_link = $5, tags = $6
WHERE id = $1;
`
	result, err := r.db.ExecContext(ctx, q, id, p.Name, p.Description, pq.Array(p.GithubLinks), p.DemoLink, pq.Array(p.Tags))
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// Delete removes the project with the given id and reports whether a row matched.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM projects WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// ListAll returns every project, newest first.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT id, name, description, github_links, demo_link, tags, created_at
FROM projects
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var (
			p        domain.Project
			demoLink sql.NullString
			github   pq.StringArray
			tags     pq.StringArray
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &github, &demoLink, &tags, &p.CreatedAt); err != nil {
			return nil, err
		}
		if github != nil {
			p.GithubLinks = []string(github)
		}
		if tags != nil {
			p.Tags = []string(tags)
		}
		if demoLink.Valid {
			p.DemoLink = &demoLink.String
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
