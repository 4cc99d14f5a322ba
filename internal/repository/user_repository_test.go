package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-lens/internal/domain"
	"student-lens/internal/repository"
)

func TestPostgresUserRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	repo := repository.NewPostgresUserRepository(testDB.Pool)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		testDB.TruncateTables(t, "users")

		user := &domain.User{
			ID:    uuid.New().String(),
			Name:  "Ada",
			Email: "ada@example.com",
			Role:  domain.RoleUser,
		}
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.Get(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, domain.RoleUser, got.Role)
		assert.Zero(t, got.TotalViews)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("missing user returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		testDB.TruncateTables(t, "users")

		first := &domain.User{ID: uuid.New().String(), Name: "A", Email: "same@example.com", Role: domain.RoleUser}
		require.NoError(t, repo.Create(ctx, first))

		second := &domain.User{ID: uuid.New().String(), Name: "B", Email: "same@example.com", Role: domain.RoleUser}
		assert.Error(t, repo.Create(ctx, second))
	})

	t.Run("list", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		testDB.SeedUser(t, domain.RoleUser)
		testDB.SeedUser(t, domain.RoleEditor)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("set role", func(t *testing.T) {
		testDB.TruncateTables(t, "users")
		id := testDB.SeedUser(t, domain.RoleUser)

		require.NoError(t, repo.SetRole(ctx, id, domain.RoleEditor))

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEditor, got.Role)
	})

	t.Run("set role on missing user", func(t *testing.T) {
		err := repo.SetRole(ctx, uuid.New().String(), domain.RoleEditor)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
