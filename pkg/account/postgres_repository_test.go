package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/breadsaver/migrations"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("breadsaver_db"),
		postgres.WithUsername("breadsaver"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migrations.Up(strings.Replace(connString, "postgres://", "pgx5://", 1)))

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL test in short mode")
	}

	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresRepository(pool)

	var owner User

	t.Run("CreateUserIfAbsent", func(t *testing.T) {
		var err error
		owner, err = repo.CreateUserIfAbsent(ctx, CreateUserParams{
			Email:      "owner@example.com",
			Password:   strPtr("secret"),
			Name:       "owner",
			BranchType: BranchMultiple,
			BakeryName: "Crumbs",
		})
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", owner.Email)
		assert.Equal(t, BranchMultiple, owner.BranchType)
		assert.Nil(t, owner.GoogleID)
		assert.False(t, owner.CreatedAt.IsZero())

		_, err = repo.CreateUserIfAbsent(ctx, CreateUserParams{Email: "owner@example.com"})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("Find", func(t *testing.T) {
		u, err := repo.FindUserByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, u.ID)

		u, err = repo.FindPasswordUserByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, "secret", *u.Password)

		_, err = repo.FindUserByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.FindUserByEmailOrGoogleID(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("LinkGoogleAccount", func(t *testing.T) {
		u, linked, err := repo.LinkGoogleAccount(ctx, LinkGoogleParams{
			UserID:        owner.ID,
			GoogleID:      "g-1",
			Picture:       "pic.png",
			VerifiedEmail: true,
		})
		require.NoError(t, err)
		assert.True(t, linked)
		require.NotNil(t, u.GoogleID)
		assert.Equal(t, "g-1", *u.GoogleID)
		assert.Equal(t, "pic.png", u.Picture)
		assert.True(t, u.VerifiedEmail)

		u, linked, err = repo.LinkGoogleAccount(ctx, LinkGoogleParams{
			UserID:   owner.ID,
			GoogleID: "g-2",
			Picture:  "",
		})
		require.NoError(t, err)
		assert.False(t, linked)
		assert.Equal(t, "g-1", *u.GoogleID)
		assert.Equal(t, "pic.png", u.Picture)

		byGoogle, err := repo.FindUserByGoogleID(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, byGoogle.ID)

		byEither, err := repo.FindUserByEmailOrGoogleID(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, byEither.ID)
	})

	t.Run("EnsureBakery", func(t *testing.T) {
		_, err := repo.FindBakeryByUserID(ctx, owner.ID)
		assert.ErrorIs(t, err, ErrBakeryNotFound)

		b, created, err := repo.EnsureBakery(ctx, owner.ID, "Crumbs")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Crumbs", b.Name)

		again, created, err := repo.EnsureBakery(ctx, owner.ID, "Other")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, b.ID, again.ID)
	})
}
