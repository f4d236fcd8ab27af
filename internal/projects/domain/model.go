package domain

import "time"

// Project is a single portfolio entry as persisted by the store.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GithubLinks []string  `json:"githubLinks"`
	DemoLink    *string   `json:"demoLink"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectPayload is the insert/update shape accepted from callers.
// ID is only meaningful for updates; the store assigns it on insert.
type ProjectPayload struct {
	ID          string   `json:"id,omitempty" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	GithubLinks []string `json:"githubLinks"`
	DemoLink    *string  `json:"demoLink" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
}

// Apply overwrites the mutable fields of p with those of the payload.
// ID and CreatedAt are left untouched.
func (p *Project) Apply(in ProjectPayload) {
	p.Name = in.Name
	p.Description = in.Description
	p.GithubLinks = in.GithubLinks
	p.DemoLink = in.DemoLink
	p.Tags = in.Tags
}
