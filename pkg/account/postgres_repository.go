package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db DBTX
}

// NewPostgresRepository creates a new PostgreSQL account repository
func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password, google_id, name, picture, verified_email, branch_type, bakery_name, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.GoogleID,
		&u.Name,
		&u.Picture,
		&u.VerifiedEmail,
		&u.BranchType,
		&u.BakeryName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *PostgresRepository) findUser(ctx context.Context, where string, arg interface{}) (User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	return r.findUser(ctx, `email = $1`, email)
}

func (r *PostgresRepository) FindUserByGoogleID(ctx context.Context, googleID string) (User, error) {
	return r.findUser(ctx, `google_id = $1`, googleID)
}

func (r *PostgresRepository) FindUserByEmailOrGoogleID(ctx context.Context, value string) (User, error) {
	return r.findUser(ctx, `email = $1 OR google_id = $1 LIMIT 1`, value)
}

func (r *PostgresRepository) FindPasswordUserByEmail(ctx context.Context, email string) (User, error) {
	return r.findUser(ctx, `email = $1 AND password IS NOT NULL`, email)
}

func (r *PostgresRepository) CreateUserIfAbsent(ctx context.Context, params CreateUserParams) (User, error) {
	query := `
		INSERT INTO users (
			id, email, password, google_id, name, picture, verified_email, branch_type, bakery_name
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT DO NOTHING
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query,
		uuid.New(),
		params.Email,
		params.Password,
		params.GoogleID,
		params.Name,
		params.Picture,
		params.VerifiedEmail,
		params.BranchType,
		params.BakeryName,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserExists
		}
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) LinkGoogleAccount(ctx context.Context, params LinkGoogleParams) (User, bool, error) {
	query := `
		UPDATE users SET
			google_id = $2,
			picture = CASE WHEN $3::text = '' THEN picture ELSE $3::text END,
			verified_email = verified_email OR $4::boolean,
			updated_at = NOW()
		WHERE id = $1 AND google_id IS NULL
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query,
		params.UserID,
		params.GoogleID,
		params.Picture,
		params.VerifiedEmail,
	))
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, false, fmt.Errorf("failed to link google account: %w", err)
	}

	// Either already linked or missing.
	u, err = r.findUser(ctx, `id = $1`, params.UserID)
	if err != nil {
		return User{}, false, err
	}
	return u, false, nil
}

func (r *PostgresRepository) FindBakeryByUserID(ctx context.Context, userID uuid.UUID) (Bakery, error) {
	var b Bakery
	err := r.db.QueryRow(ctx,
		`SELECT id, name, user_id, created_at FROM bakeries WHERE user_id = $1`, userID,
	).Scan(&b.ID, &b.Name, &b.UserID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Bakery{}, ErrBakeryNotFound
		}
		return Bakery{}, fmt.Errorf("failed to get bakery: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) EnsureBakery(ctx context.Context, userID uuid.UUID, name string) (Bakery, bool, error) {
	query := `
		INSERT INTO bakeries (id, name, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, name, user_id, created_at
	`

	var b Bakery
	err := r.db.QueryRow(ctx, query, uuid.New(), name, userID).Scan(&b.ID, &b.Name, &b.UserID, &b.CreatedAt)
	if err == nil {
		return b, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Bakery{}, false, fmt.Errorf("failed to create bakery: %w", err)
	}

	b, err = r.FindBakeryByUserID(ctx, userID)
	if err != nil {
		return Bakery{}, false, err
	}
	return b, false, nil
}
