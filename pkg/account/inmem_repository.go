package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]User
	byEmail      map[string]uuid.UUID
	byGoogleID   map[string]uuid.UUID
	bakeryByUser map[uuid.UUID]Bakery
	now          func() time.Time
}

// NewInMemoryRepository creates a new in-memory account repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:        make(map[uuid.UUID]User),
		byEmail:      make(map[string]uuid.UUID),
		byGoogleID:   make(map[string]uuid.UUID),
		bakeryByUser: make(map[uuid.UUID]Bakery),
		now:          time.Now,
	}
}

func (r *InMemoryRepository) FindUserByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return copyUser(r.users[id]), nil
}

func (r *InMemoryRepository) FindUserByGoogleID(_ context.Context, googleID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byGoogleID[googleID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return copyUser(r.users[id]), nil
}

func (r *InMemoryRepository) FindUserByEmailOrGoogleID(ctx context.Context, value string) (User, error) {
	if u, err := r.FindUserByEmail(ctx, value); err == nil {
		return u, nil
	}
	return r.FindUserByGoogleID(ctx, value)
}

func (r *InMemoryRepository) FindPasswordUserByEmail(ctx context.Context, email string) (User, error) {
	u, err := r.FindUserByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if !u.HasPassword() {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *InMemoryRepository) CreateUserIfAbsent(_ context.Context, params CreateUserParams) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[params.Email]; ok {
		return User{}, ErrUserExists
	}
	if params.GoogleID != nil {
		if _, ok := r.byGoogleID[*params.GoogleID]; ok {
			return User{}, ErrUserExists
		}
	}

	now := r.now()
	u := User{
		ID:            uuid.New(),
		Email:         params.Email,
		Password:      copyString(params.Password),
		GoogleID:      copyString(params.GoogleID),
		Name:          params.Name,
		Picture:       params.Picture,
		VerifiedEmail: params.VerifiedEmail,
		BranchType:    params.BranchType,
		BakeryName:    params.BakeryName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.users[u.ID] = u
	r.byEmail[u.Email] = u.ID
	if u.GoogleID != nil {
		r.byGoogleID[*u.GoogleID] = u.ID
	}
	return copyUser(u), nil
}

func (r *InMemoryRepository) LinkGoogleAccount(_ context.Context, params LinkGoogleParams) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[params.UserID]
	if !ok {
		return User{}, false, ErrUserNotFound
	}
	if u.GoogleID != nil {
		return copyUser(u), false, nil
	}
	if _, taken := r.byGoogleID[params.GoogleID]; taken {
		return User{}, false, ErrUserExists
	}

	googleID := params.GoogleID
	u.GoogleID = &googleID
	if params.Picture != "" {
		u.Picture = params.Picture
	}
	u.VerifiedEmail = u.VerifiedEmail || params.VerifiedEmail
	u.UpdatedAt = r.now()

	r.users[u.ID] = u
	r.byGoogleID[googleID] = u.ID
	return copyUser(u), true, nil
}

func (r *InMemoryRepository) FindBakeryByUserID(_ context.Context, userID uuid.UUID) (Bakery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bakeryByUser[userID]
	if !ok {
		return Bakery{}, ErrBakeryNotFound
	}
	return b, nil
}

func (r *InMemoryRepository) EnsureBakery(_ context.Context, userID uuid.UUID, name string) (Bakery, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.bakeryByUser[userID]; ok {
		return b, false, nil
	}
	if _, ok := r.users[userID]; !ok {
		return Bakery{}, false, ErrUserNotFound
	}

	b := Bakery{
		ID:        uuid.New(),
		Name:      name,
		UserID:    userID,
		CreatedAt: r.now(),
	}
	r.bakeryByUser[userID] = b
	return b, true, nil
}

// Counts returns the number of stored users and bakeries
func (r *InMemoryRepository) Counts() (users int, bakeries int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), len(r.bakeryByUser)
}

func copyUser(u User) User {
	u.Password = copyString(u.Password)
	u.GoogleID = copyString(u.GoogleID)
	return u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
