package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnector/api/internal/auth"
	"github.com/devconnector/api/internal/config"
	"github.com/devconnector/api/internal/domain"
	"github.com/devconnector/api/internal/events"
	"github.com/devconnector/api/internal/repository"
	apperrors "github.com/devconnector/api/pkg/util"
)

type fixture struct {
	store    *repository.MemoryStore
	tokens   *auth.TokenManager
	auth     *AuthService
	profiles *ProfileService
	posts    *PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	authCfg := config.AuthConfig{JWTSecret: "S", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}
	tokens, err := auth.NewTokenManager(authCfg)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	posts := NewPostService(store.Posts(), store.Users(), dispatcher, zap.NewNop())
	posts.RegisterHandlers()
	NewActivityService(dispatcher, zap.NewNop()).RegisterHandlers()

	return &fixture{
		store:  store,
		tokens: tokens,
		auth: NewAuthService(authCfg, AuthDependencies{
			UserRepo:    store.Users(),
			ProfileRepo: store.Profiles(),
			Dispatcher:  dispatcher,
			Tokens:      tokens,
		}),
		profiles: NewProfileService(store.Profiles()),
		posts:    posts,
	}
}

func (f *fixture) register(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user, _, err := f.auth.RegisterUser(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return user
}

func assertDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, status, de.HTTPStatus)
	if len(de.Errors) > 0 {
		assert.Equal(t, message, de.Errors[0].Msg)
		return
	}
	assert.Equal(t, message, de.Message)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	user, token, err := f.auth.RegisterUser(ctx, " Ada ", "Ada@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claim, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claim.ID)

	_, _, err = f.auth.RegisterUser(ctx, "Ada", "ada@example.com", "secret1")
	assertDomainError(t, err, http.StatusBadRequest, MessageUserExists)

	token, err = f.auth.LoginUser(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	claim, err = f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claim.ID)

	_, err = f.auth.LoginUser(ctx, "ada@example.com", "wrong")
	assertDomainError(t, err, http.StatusBadRequest, MessageInvalidCredentials)

	_, err = f.auth.LoginUser(ctx, "nobody@example.com", "secret1")
	assertDomainError(t, err, http.StatusBadRequest, MessageInvalidCredentials)

	current, err := f.auth.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, current.Email)

	_, err = f.auth.CurrentUser(ctx, "missing")
	assertDomainError(t, err, http.StatusNotFound, "User not found")
}

func TestAuthService_DeleteAccountRemovesPosts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "Ada", "ada@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	_, err := f.profiles.Upsert(ctx, ada.ID, ProfileInput{Status: "dev", Skills: "go"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, ada.ID, "hello")
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, bob.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, f.auth.DeleteAccount(ctx, ada.ID))

	_, err = f.auth.CurrentUser(ctx, ada.ID)
	assertDomainError(t, err, http.StatusNotFound, "User not found")
	_, err = f.profiles.GetMine(ctx, ada.ID)
	assertDomainError(t, err, http.StatusBadRequest, MessageNoProfile)

	posts, err := f.posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, bob.ID, posts[0].UserID)

	err = f.auth.DeleteAccount(ctx, ada.ID)
	assertDomainError(t, err, http.StatusNotFound, "User not found")
}

func TestProfileService(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "Ada", "ada@example.com")

	_, err := f.profiles.GetMine(ctx, ada.ID)
	assertDomainError(t, err, http.StatusBadRequest, MessageNoProfile)

	_, err = f.profiles.AddExperience(ctx, ada.ID, domain.Experience{Title: "x"})
	assertDomainError(t, err, http.StatusBadRequest, MessageNoProfile)

	profile, err := f.profiles.Upsert(ctx, ada.ID, ProfileInput{
		Status:         "Developer",
		Skills:         " go, sql ,,fiber ",
		GitHubUsername: "ada",
		Social:         domain.Social{Twitter: "https://twitter.com/ada"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql", "fiber"}, profile.Skills)
	require.NotNil(t, profile.User)
	assert.Equal(t, "Ada", profile.User.Name)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	profile, err = f.profiles.AddExperience(ctx, ada.ID, domain.Experience{Title: "Junior", Company: "A", From: from})
	require.NoError(t, err)
	profile, err = f.profiles.AddExperience(ctx, ada.ID, domain.Experience{Title: "Senior", Company: "B", From: from})
	require.NoError(t, err)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior", profile.Experience[0].Title)
	assert.NotEmpty(t, profile.Experience[0].ID)

	profile, err = f.profiles.RemoveExperience(ctx, ada.ID, profile.Experience[1].ID)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Senior", profile.Experience[0].Title)

	_, err = f.profiles.RemoveExperience(ctx, ada.ID, "missing")
	assertDomainError(t, err, http.StatusNotFound, MessageExperienceNotFound)

	profile, err = f.profiles.AddEducation(ctx, ada.ID, domain.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)

	profile, err = f.profiles.RemoveEducation(ctx, ada.ID, profile.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Education)

	_, err = f.profiles.RemoveEducation(ctx, ada.ID, "missing")
	assertDomainError(t, err, http.StatusNotFound, MessageEducationNotFound)

	profile, err = f.profiles.Upsert(ctx, ada.ID, ProfileInput{Status: "Lead", Skills: "go"})
	require.NoError(t, err)
	assert.Equal(t, "Lead", profile.Status)
	assert.Len(t, profile.Experience, 1, "upsert keeps nested entries")

	all, err := f.profiles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := f.profiles.GetByUserID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)

	_, err = f.profiles.GetByUserID(ctx, "not-a-uuid")
	assertDomainError(t, err, http.StatusBadRequest, MessageProfileNotFound)
	_, err = f.profiles.GetByUserID(ctx, "7d444840-9dc0-11d1-b245-5ffdce74fad2")
	assertDomainError(t, err, http.StatusBadRequest, MessageProfileNotFound)
}

func TestParseSkills(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, ParseSkills("a, b"))
	assert.Equal(t, []string{}, ParseSkills(""))
	assert.Equal(t, []string{}, ParseSkills(" , "))
}

func TestPostService(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ada := f.register(t, "Ada", "ada@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	post, err := f.posts.Create(ctx, ada.ID, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "Ada", post.Name)
	assert.Equal(t, ada.Avatar, post.Avatar)

	_, err = f.posts.Create(ctx, "ghost", "boo")
	assertDomainError(t, err, http.StatusNotFound, "User not found")

	_, err = f.posts.Get(ctx, "not-a-uuid")
	assertDomainError(t, err, http.StatusNotFound, MessagePostNotFound)
	_, err = f.posts.Get(ctx, "7d444840-9dc0-11d1-b245-5ffdce74fad2")
	assertDomainError(t, err, http.StatusNotFound, MessagePostNotFound)

	t.Run("likes", func(t *testing.T) {
		likes, err := f.posts.Like(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, bob.ID, likes[0].UserID)

		_, err = f.posts.Like(ctx, bob.ID, post.ID)
		assertDomainError(t, err, http.StatusBadRequest, MessageAlreadyLiked)

		likes, err = f.posts.Like(ctx, ada.ID, post.ID)
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.Equal(t, ada.ID, likes[0].UserID)

		likes, err = f.posts.Unlike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		require.Len(t, likes, 1)

		_, err = f.posts.Unlike(ctx, bob.ID, post.ID)
		assertDomainError(t, err, http.StatusBadRequest, MessageNotLiked)
	})

	t.Run("comments", func(t *testing.T) {
		comments, err := f.posts.Comment(ctx, bob.ID, post.ID, "nice")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Bob", comments[0].Name)

		comments, err = f.posts.Comment(ctx, ada.ID, post.ID, "thanks")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "thanks", comments[0].Text)

		_, err = f.posts.Uncomment(ctx, ada.ID, post.ID, comments[1].ID)
		assertDomainError(t, err, http.StatusUnauthorized, MessageNotAuthorized)

		_, err = f.posts.Uncomment(ctx, ada.ID, post.ID, "missing")
		assertDomainError(t, err, http.StatusNotFound, MessageCommentNotFound)

		comments, err = f.posts.Uncomment(ctx, bob.ID, post.ID, comments[1].ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "thanks", comments[0].Text)
	})

	t.Run("delete", func(t *testing.T) {
		err := f.posts.Delete(ctx, bob.ID, post.ID)
		assertDomainError(t, err, http.StatusUnauthorized, MessageNotAuthorized)

		require.NoError(t, f.posts.Delete(ctx, ada.ID, post.ID))

		err = f.posts.Delete(ctx, ada.ID, post.ID)
		assertDomainError(t, err, http.StatusNotFound, MessagePostNotFound)
	})
}

func TestGravatarURL(t *testing.T) {
	t.Parallel()

	// md5("myemailaddress@example.com") from the gravatar documentation.
	got := GravatarURL(" MyEmailAddress@example.com ")
	assert.Equal(t, "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=mm&r=pg&s=200", got)
}
