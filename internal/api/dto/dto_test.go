package dto

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/api/internal/domain"
	apperrors "github.com/devconnector/api/pkg/util"
)

func TestValidate_RegisterRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(&UserRegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))

	err := Validate(&UserRegisterRequest{Email: "nope", Password: "123"})
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, []apperrors.FieldError{
		{Msg: "Name is required", Param: "name"},
		{Msg: "Please include a valid email", Param: "email"},
		{Msg: "Please enter a password with 6 or more characters", Param: "password"},
	}, de.Errors)
}

func TestValidate_Dates(t *testing.T) {
	t.Parallel()

	req := ExperienceRequest{Title: "Dev", Company: "ACME", From: "2020-01-02", To: "2021-03-04T00:00:00Z"}
	require.NoError(t, Validate(req))

	exp := req.Experience()
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), exp.From)
	require.NotNil(t, exp.To)
	assert.Equal(t, 2021, exp.To.Year())

	err := Validate(ExperienceRequest{Title: "Dev", Company: "ACME", From: "yesterday"})
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	require.Len(t, de.Errors, 1)
	assert.Equal(t, "from", de.Errors[0].Param)

	edu := EducationRequest{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2010-09-01"}.Education()
	assert.Nil(t, edu.To)
	assert.Equal(t, "CS", edu.FieldOfStudy)
}

func TestResponses_EmptyListsSerialize(t *testing.T) {
	t.Parallel()

	post := NewPostResponse(&domain.Post{ID: "p1", UserID: "u1"})
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)

	profile := NewProfileResponse(&domain.Profile{ID: "x", UserID: "u1"})
	require.NotNil(t, profile.User)
	assert.Equal(t, "u1", profile.User.ID)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Education)

	user := NewUserResponse(&domain.User{ID: "u1", PasswordHash: "hash"})
	assert.Equal(t, "u1", user.ID)
}
