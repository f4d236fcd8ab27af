package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first", func(t *testing.T) {
		repo := NewMemoryRepository()
		clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.now = func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}

		first, err := repo.Insert(ctx, domain.ProjectPayload{Name: "first", Description: "d"})
		require.NoError(t, err)
		second, err := repo.Insert(ctx, domain.ProjectPayload{Name: "second", Description: "d"})
		require.NoError(t, err)

		items, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, second.ID, items[0].ID)
		assert.Equal(t, first.ID, items[1].ID)
	})

	t.Run("equal timestamps fall back to insertion order", func(t *testing.T) {
		repo := NewMemoryRepository()
		fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return fixed }

		var names []string
		for _, n := range []string{"a", "b", "c"} {
			_, err := repo.Insert(ctx, domain.ProjectPayload{Name: n, Description: "d"})
			require.NoError(t, err)
		}
		items, err := repo.ListAll(ctx)
		require.NoError(t, err)
		for _, p := range items {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"c", "b", "a"}, names)
	})

	t.Run("update keeps id and created_at", func(t *testing.T) {
		repo := NewMemoryRepository()
		p, err := repo.Insert(ctx, domain.ProjectPayload{Name: "old", Description: "d", Tags: []string{"x"}})
		require.NoError(t, err)

		ok, err := repo.Update(ctx, p.ID, domain.ProjectPayload{ID: "other", Name: "new", Description: "e"})
		require.NoError(t, err)
		assert.True(t, ok)

		items, _ := repo.ListAll(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, p.ID, items[0].ID)
		assert.Equal(t, p.CreatedAt, items[0].CreatedAt)
		assert.Equal(t, "new", items[0].Name)
		assert.Nil(t, items[0].Tags)
	})

	t.Run("update and delete of unknown ids report no match", func(t *testing.T) {
		repo := NewMemoryRepository()

		ok, err := repo.Update(ctx, "missing", domain.ProjectPayload{Name: "a", Description: "b"})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.Delete(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, repo.Len())
	})

	t.Run("stored slices are isolated from callers", func(t *testing.T) {
		repo := NewMemoryRepository()
		links := []string{"https://a"}
		_, err := repo.Insert(ctx, domain.ProjectPayload{Name: "a", Description: "b", GithubLinks: links})
		require.NoError(t, err)
		links[0] = "mutated"

		items, _ := repo.ListAll(ctx)
		assert.Equal(t, []string{"https://a"}, items[0].GithubLinks)
	})
}
