package http

import (
	"context"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

// Service is the project mutation layer consumed by the handlers.
type Service interface {
	Create(ctx context.Context, payload domain.ProjectPayload) domain.Result
	Update(ctx context.Context, payload domain.ProjectPayload) domain.Result
	Delete(ctx context.Context, id string) domain.Result
	List(ctx context.Context) domain.Result
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}
