package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

// Store is the persistence capability the service needs. Both the Postgres
// and in-memory repositories, and the Redis-cached decorator, satisfy it.
type Store interface {
	Insert(ctx context.Context, p domain.ProjectPayload) (*domain.Project, error)
	Update(ctx context.Context, id string, p domain.ProjectPayload) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
}

// ProjectService handles project-related business logic: it authorizes the
// caller, validates the payload and runs one store operation, reporting the
// outcome as a domain.Result rather than an error.
type ProjectService struct {
	store    Store
	sessions auth.SessionOracle
	policy   auth.Policy
	logger   *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(store Store, sessions auth.SessionOracle, policy auth.Policy, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		store:    store,
		sessions: sessions,
		policy:   policy,
		logger:   logger,
	}
}

// Create inserts a new project. The returned data is the validated payload;
// the store-assigned id is not part of the result.
func (s *ProjectService) Create(ctx context.Context, payload domain.ProjectPayload) domain.Result {
	if !s.authorized(ctx) {
		return denied()
	}

	p, fe := domain.ValidatePayload(payload)
	if fe != nil {
		return domain.Fail(domain.KindValidationFailed, fe)
	}

	if _, err := s.store.Insert(ctx, *p); err != nil {
		return s.storeFailure("create", err)
	}

	return domain.OK(p)
}

// Update replaces the five mutable fields of the project named by payload.ID.
// An id that matches nothing still succeeds.
func (s *ProjectService) Update(ctx context.Context, payload domain.ProjectPayload) domain.Result {
	if !s.authorized(ctx) {
		return denied()
	}

	if strings.TrimSpace(payload.ID) == "" {
		return domain.Fail(domain.KindMissingIdentifier, domain.MsgMissingUpdateID)
	}

	p, fe := domain.ValidatePayload(payload)
	if fe != nil {
		return domain.Fail(domain.KindValidationFailed, fe)
	}

	matched, err := s.store.Update(ctx, p.ID, *p)
	if err != nil {
		return s.storeFailure("update", err)
	}
	if !matched {
		s.logger.Debug("update matched no project", zap.String("id", p.ID))
	}

	return domain.OK(p)
}

// Delete removes the project with the given id. Deleting an unknown id is a
// successful no-op.
func (s *ProjectService) Delete(ctx context.Context, id string) domain.Result {
	if !s.authorized(ctx) {
		return denied()
	}

	if strings.TrimSpace(id) == "" {
		return domain.Fail(domain.KindMissingIdentifier, domain.MsgMissingDeleteID)
	}

	matched, err := s.store.Delete(ctx, id)
	if err != nil {
		return s.storeFailure("delete", err)
	}
	if !matched {
		s.logger.Debug("delete matched no project", zap.String("id", id))
	}

	return domain.Result{Success: true}
}

// List returns every project, newest first. It needs no identity.
func (s *ProjectService) List(ctx context.Context) domain.Result {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return s.storeFailure("list", err)
	}
	if items == nil {
		items = []domain.Project{}
	}
	return domain.OK(items)
}

func (s *ProjectService) authorized(ctx context.Context) bool {
	if s.sessions == nil || s.policy == nil {
		return false
	}
	id, ok := s.sessions.Identity(ctx)
	if !ok {
		return false
	}
	return s.policy.IsAdmin(id.Email)
}

func (s *ProjectService) storeFailure(op string, err error) domain.Result {
	s.logger.Error("project store failure", zap.String("op", op), zap.Error(err))
	return domain.Fail(domain.KindStoreFailure, err.Error())
}

func denied() domain.Result {
	return domain.Fail(domain.KindAuthorizationDenied, domain.MsgNotAuthorized)
}
