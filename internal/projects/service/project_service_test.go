package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
	"github.com/portfolio-site/portfolio-backend/internal/projects/repository"
)

const adminEmail = "owner@example.com"

// countingStore records mutating calls on top of the in-memory repository.
type countingStore struct {
	*repository.MemoryRepository
	mutations int
}

func (s *countingStore) Insert(ctx context.Context, p domain.ProjectPayload) (*domain.Project, error) {
	s.mutations++
	return s.MemoryRepository.Insert(ctx, p)
}

func (s *countingStore) Update(ctx context.Context, id string, p domain.ProjectPayload) (bool, error) {
	s.mutations++
	return s.MemoryRepository.Update(ctx, id, p)
}

func (s *countingStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mutations++
	return s.MemoryRepository.Delete(ctx, id)
}

type failingStore struct{ err error }

func (f failingStore) Insert(context.Context, domain.ProjectPayload) (*domain.Project, error) {
	return nil, f.err
}
func (f failingStore) Update(context.Context, string, domain.ProjectPayload) (bool, error) {
	return false, f.err
}
func (f failingStore) Delete(context.Context, string) (bool, error) { return false, f.err }
func (f failingStore) ListAll(context.Context) ([]domain.Project, error) {
	return nil, f.err
}

func setupService(t *testing.T) (*ProjectService, *countingStore) {
	t.Helper()
	store := &countingStore{MemoryRepository: repository.NewMemoryRepository()}
	svc := NewProjectService(store, auth.ContextOracle{}, auth.NewAdminPolicy(adminEmail), nil)
	return svc, store
}

func as(email string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{Email: email})
}

func strPtr(s string) *string { return &s }

func listProjects(t *testing.T, svc *ProjectService) []domain.Project {
	t.Helper()
	res := svc.List(context.Background())
	require.True(t, res.Success)
	items, ok := res.Data.([]domain.Project)
	require.True(t, ok)
	return items
}

func TestProjectService_Authorization(t *testing.T) {
	callers := map[string]context.Context{
		"anonymous":     context.Background(),
		"other account": as("someone@example.com"),
		"empty email":   as(""),
	}

	for name, ctx := range callers {
		t.Run(name, func(t *testing.T) {
			svc, store := setupService(t)
			payload := domain.ProjectPayload{Name: "Portfolio", Description: "My site"}

			for _, res := range []domain.Result{
				svc.Create(ctx, payload),
				svc.Update(ctx, domain.ProjectPayload{ID: "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11", Name: "a", Description: "b"}),
				svc.Update(ctx, domain.ProjectPayload{}),
				svc.Delete(ctx, "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11"),
				svc.Delete(ctx, ""),
			} {
				assert.False(t, res.Success)
				assert.Equal(t, domain.KindAuthorizationDenied, res.Kind)
				assert.Equal(t, domain.MsgNotAuthorized, res.Error)
			}
			assert.Zero(t, store.mutations)

			list := svc.List(ctx)
			assert.True(t, list.Success)
		})
	}
}

func TestProjectService_Create(t *testing.T) {
	t.Run("authorized create persists the payload", func(t *testing.T) {
		svc, _ := setupService(t)
		payload := domain.ProjectPayload{
			Name:        "Portfolio",
			Description: "My site",
			Tags:        []string{"react", "ts"},
		}

		res := svc.Create(as(adminEmail), payload)
		require.True(t, res.Success, "%v", res.Error)
		data, ok := res.Data.(*domain.ProjectPayload)
		require.True(t, ok)
		assert.Equal(t, payload, *data)
		assert.Empty(t, data.ID)

		items := listProjects(t, svc)
		require.Len(t, items, 1)
		assert.NotEmpty(t, items[0].ID)
		assert.False(t, items[0].CreatedAt.IsZero())
		assert.Equal(t, "Portfolio", items[0].Name)
		assert.Equal(t, "My site", items[0].Description)
		assert.Nil(t, items[0].DemoLink)
		assert.Nil(t, items[0].GithubLinks)
		assert.Equal(t, []string{"react", "ts"}, items[0].Tags)
	})

	t.Run("newest project lists first", func(t *testing.T) {
		svc, _ := setupService(t)
		for _, name := range []string{"first", "second", "third"} {
			require.True(t, svc.Create(as(adminEmail), domain.ProjectPayload{Name: name, Description: "d"}).Success)
			time.Sleep(time.Millisecond)
		}

		items := listProjects(t, svc)
		require.Len(t, items, 3)
		assert.Equal(t, "third", items[0].Name)
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt))
		}
	})

	t.Run("round-trips link order and null tags", func(t *testing.T) {
		svc, _ := setupService(t)
		res := svc.Create(as(adminEmail), domain.ProjectPayload{
			Name:        "Links",
			Description: "d",
			GithubLinks: []string{"https://a", "https://b"},
			Tags:        nil,
		})
		require.True(t, res.Success)

		items := listProjects(t, svc)
		require.Len(t, items, 1)
		assert.Equal(t, []string{"https://a", "https://b"}, items[0].GithubLinks)
		assert.Empty(t, items[0].Tags)
	})

	t.Run("missing fields fail validation without touching the store", func(t *testing.T) {
		svc, store := setupService(t)

		for _, payload := range []domain.ProjectPayload{
			{Description: "no name"},
			{Name: "no description"},
			{},
		} {
			res := svc.Create(as(adminEmail), payload)
			assert.False(t, res.Success)
			assert.Equal(t, domain.KindValidationFailed, res.Kind)
			_, ok := res.Error.(domain.FieldErrors)
			assert.True(t, ok)
		}
		assert.Zero(t, store.mutations)
	})

	t.Run("invalid demo link fails validation", func(t *testing.T) {
		svc, _ := setupService(t)
		res := svc.Create(as(adminEmail), domain.ProjectPayload{Name: "a", Description: "b", DemoLink: strPtr("nope")})
		require.False(t, res.Success)
		fe := res.Error.(domain.FieldErrors)
		assert.Contains(t, fe, "demoLink")
	})
}

func TestProjectService_Update(t *testing.T) {
	t.Run("replaces mutable fields and keeps id and createdAt", func(t *testing.T) {
		svc, _ := setupService(t)
		require.True(t, svc.Create(as(adminEmail), domain.ProjectPayload{
			Name: "Old", Description: "old", Tags: []string{"x"}, DemoLink: strPtr("https://old.example.com"),
		}).Success)
		before := listProjects(t, svc)[0]

		payload := domain.ProjectPayload{
			ID:          before.ID,
			Name:        "New",
			Description: "new",
			GithubLinks: []string{"https://github.com/me/new"},
		}
		res := svc.Update(as(adminEmail), payload)
		require.True(t, res.Success, "%v", res.Error)
		assert.Equal(t, payload, *res.Data.(*domain.ProjectPayload))

		after := listProjects(t, svc)
		require.Len(t, after, 1)
		assert.Equal(t, before.ID, after[0].ID)
		assert.Equal(t, before.CreatedAt, after[0].CreatedAt)
		assert.Equal(t, "New", after[0].Name)
		assert.Equal(t, "new", after[0].Description)
		assert.Equal(t, []string{"https://github.com/me/new"}, after[0].GithubLinks)
		assert.Nil(t, after[0].DemoLink)
		assert.Nil(t, after[0].Tags)
	})

	t.Run("missing id is reported before validation", func(t *testing.T) {
		svc, store := setupService(t)
		res := svc.Update(as(adminEmail), domain.ProjectPayload{})
		assert.False(t, res.Success)
		assert.Equal(t, domain.KindMissingIdentifier, res.Kind)
		assert.Equal(t, domain.MsgMissingUpdateID, res.Error)
		assert.Zero(t, store.mutations)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		svc, store := setupService(t)
		res := svc.Update(as(adminEmail), domain.ProjectPayload{ID: "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11"})
		assert.Equal(t, domain.KindValidationFailed, res.Kind)
		assert.Zero(t, store.mutations)
	})

	t.Run("malformed id fails validation", func(t *testing.T) {
		svc, _ := setupService(t)
		res := svc.Update(as(adminEmail), domain.ProjectPayload{ID: "42", Name: "a", Description: "b"})
		assert.Equal(t, domain.KindValidationFailed, res.Kind)
		assert.Contains(t, res.Error.(domain.FieldErrors), "id")
	})

	t.Run("unknown id is a silent success", func(t *testing.T) {
		svc, _ := setupService(t)
		res := svc.Update(as(adminEmail), domain.ProjectPayload{
			ID: "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11", Name: "a", Description: "b",
		})
		assert.True(t, res.Success)
		assert.Empty(t, listProjects(t, svc))
	})
}

func TestProjectService_Delete(t *testing.T) {
	t.Run("removes the project", func(t *testing.T) {
		svc, _ := setupService(t)
		require.True(t, svc.Create(as(adminEmail), domain.ProjectPayload{Name: "a", Description: "b"}).Success)
		id := listProjects(t, svc)[0].ID

		res := svc.Delete(as(adminEmail), id)
		assert.True(t, res.Success)
		assert.Nil(t, res.Data)
		assert.Nil(t, res.Error)
		assert.Empty(t, listProjects(t, svc))
	})

	t.Run("absent id succeeds and leaves the store unchanged", func(t *testing.T) {
		svc, _ := setupService(t)
		require.True(t, svc.Create(as(adminEmail), domain.ProjectPayload{Name: "a", Description: "b"}).Success)
		before := listProjects(t, svc)

		res := svc.Delete(as(adminEmail), "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11")
		assert.True(t, res.Success)
		res = svc.Delete(as(adminEmail), "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11")
		assert.True(t, res.Success)
		assert.Equal(t, before, listProjects(t, svc))
	})

	t.Run("empty id is a missing identifier", func(t *testing.T) {
		svc, store := setupService(t)
		res := svc.Delete(as(adminEmail), "  ")
		assert.Equal(t, domain.KindMissingIdentifier, res.Kind)
		assert.Equal(t, domain.MsgMissingDeleteID, res.Error)
		assert.Zero(t, store.mutations)
	})
}

func TestProjectService_List(t *testing.T) {
	t.Run("empty store yields an empty list", func(t *testing.T) {
		svc, _ := setupService(t)
		res := svc.List(context.Background())
		require.True(t, res.Success)
		assert.Equal(t, []domain.Project{}, res.Data)
	})
}

func TestProjectService_StoreFailure(t *testing.T) {
	svc := NewProjectService(failingStore{err: errors.New("dial tcp: connection refused")},
		auth.ContextOracle{}, auth.NewAdminPolicy(adminEmail), nil)
	ctx := as(adminEmail)

	for name, res := range map[string]domain.Result{
		"create": svc.Create(ctx, domain.ProjectPayload{Name: "a", Description: "b"}),
		"update": svc.Update(ctx, domain.ProjectPayload{ID: "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11", Name: "a", Description: "b"}),
		"delete": svc.Delete(ctx, "5f0c6a1e-8f4b-4c43-9a55-0d1c1f6f2b11"),
		"list":   svc.List(context.Background()),
	} {
		assert.False(t, res.Success, name)
		assert.Equal(t, domain.KindStoreFailure, res.Kind, name)
		assert.Equal(t, "dial tcp: connection refused", res.Error, name)
	}
}

func TestProjectService_Scenario(t *testing.T) {
	svc, store := setupService(t)
	payload := domain.ProjectPayload{
		Name:        "Portfolio",
		Description: "My site",
		DemoLink:    nil,
		GithubLinks: nil,
		Tags:        []string{"react", "ts"},
	}

	res := svc.Create(as("intruder@example.com"), payload)
	assert.Equal(t, domain.KindAuthorizationDenied, res.Kind)
	assert.Zero(t, store.Len())

	res = svc.Create(as(adminEmail), payload)
	require.True(t, res.Success)
	require.Equal(t, 1, store.Len())
}
