package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnector/api/internal/domain"
)

// MemoryStore keeps all entities in process memory. It backs local runs
// without POSTGRES_DSN and the service tests; data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	profiles map[string]domain.Profile
	posts    map[string]domain.Post
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		profiles: make(map[string]domain.Profile),
		posts:    make(map[string]domain.Post),
		now:      time.Now,
	}
}

// Users returns a UserRepository view of the store.
func (m *MemoryStore) Users() UserRepository { return memoryUsers{m} }

// Profiles returns a ProfileRepository view of the store.
func (m *MemoryStore) Profiles() ProfileRepository { return memoryProfiles{m} }

// Posts returns a PostRepository view of the store.
func (m *MemoryStore) Posts() PostRepository { return memoryPosts{m} }

// tick returns strictly increasing timestamps so ordering by date is stable.
func (m *MemoryStore) tick(last time.Time) time.Time {
	now := m.now().UTC()
	if !now.After(last) {
		now = last.Add(time.Microsecond)
	}
	return now
}

type memoryUsers struct{ m *MemoryStore }

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Email == user.Email {
			return &duplicateKeyError{key: "email"}
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.m.tick(time.Time{})
	r.m.users[user.ID] = *user
	return nil
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	user, ok := r.m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, user := range r.m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memoryUsers) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.m.users, id)
	delete(r.m.profiles, id)
	return nil
}

type memoryProfiles struct{ m *MemoryStore }

func (r memoryProfiles) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	profile, ok := r.m.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.populate(profile), nil
}

func (r memoryProfiles) List(_ context.Context) ([]domain.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	result := make([]domain.Profile, 0, len(r.m.profiles))
	for _, profile := range r.m.profiles {
		result = append(result, *r.populate(profile))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r memoryProfiles) Upsert(_ context.Context, profile *domain.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[profile.UserID]; !ok {
		return &foreignKeyError{key: "user_id"}
	}
	if existing, ok := r.m.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.Experience = existing.Experience
		profile.Education = existing.Education
		profile.CreatedAt = existing.CreatedAt
	} else {
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		profile.Experience = []domain.Experience{}
		profile.Education = []domain.Education{}
		profile.CreatedAt = r.m.tick(r.latestProfile())
	}
	r.m.profiles[profile.UserID] = cloneProfile(*profile)
	return nil
}

func (r memoryProfiles) Save(_ context.Context, profile *domain.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing, ok := r.m.profiles[profile.UserID]
	if !ok {
		return pgx.ErrNoRows
	}
	saved := cloneProfile(*profile)
	saved.ID = existing.ID
	saved.CreatedAt = existing.CreatedAt
	saved.User = nil
	r.m.profiles[profile.UserID] = saved
	return nil
}

func (r memoryProfiles) DeleteByUserID(_ context.Context, userID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.profiles, userID)
	return nil
}

func (r memoryProfiles) populate(profile domain.Profile) *domain.Profile {
	out := cloneProfile(profile)
	user := r.m.users[profile.UserID]
	out.User = &domain.UserSummary{ID: profile.UserID, Name: user.Name, Avatar: user.Avatar}
	return &out
}

func (r memoryProfiles) latestProfile() time.Time {
	var latest time.Time
	for _, p := range r.m.profiles {
		if p.CreatedAt.After(latest) {
			latest = p.CreatedAt
		}
	}
	return latest
}

type memoryPosts struct{ m *MemoryStore }

func (r memoryPosts) Create(_ context.Context, post *domain.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.Likes = []domain.Like{}
	post.Comments = []domain.Comment{}
	var latest time.Time
	for _, p := range r.m.posts {
		if p.CreatedAt.After(latest) {
			latest = p.CreatedAt
		}
	}
	post.CreatedAt = r.m.tick(latest)
	r.m.posts[post.ID] = clonePost(*post)
	return nil
}

func (r memoryPosts) List(_ context.Context) ([]domain.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	result := make([]domain.Post, 0, len(r.m.posts))
	for _, post := range r.m.posts {
		result = append(result, clonePost(post))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r memoryPosts) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	post, ok := r.m.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := clonePost(post)
	return &out, nil
}

func (r memoryPosts) UpdateReactions(_ context.Context, post *domain.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing, ok := r.m.posts[post.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	updated := clonePost(*post)
	existing.Likes = updated.Likes
	existing.Comments = updated.Comments
	r.m.posts[post.ID] = existing
	return nil
}

func (r memoryPosts) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.m.posts, id)
	return nil
}

func (r memoryPosts) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var removed int64
	for id, post := range r.m.posts {
		if post.UserID == userID {
			delete(r.m.posts, id)
			removed++
		}
	}
	return removed, nil
}

func cloneProfile(p domain.Profile) domain.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]domain.Experience{}, p.Experience...)
	p.Education = append([]domain.Education{}, p.Education...)
	if p.User != nil {
		u := *p.User
		p.User = &u
	}
	return p
}

func clonePost(p domain.Post) domain.Post {
	p.Likes = append([]domain.Like{}, p.Likes...)
	p.Comments = append([]domain.Comment{}, p.Comments...)
	return p
}

type duplicateKeyError struct{ key string }

func (e *duplicateKeyError) Error() string { return "duplicate key value violates unique constraint on " + e.key }

type foreignKeyError struct{ key string }

func (e *foreignKeyError) Error() string { return "insert violates foreign key constraint on " + e.key }
