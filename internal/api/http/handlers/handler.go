package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devconnector/api/internal/api/dto"
	"github.com/devconnector/api/internal/auth"
	apperrors "github.com/devconnector/api/pkg/util"
)

const messageInvalidPayload = "Invalid request body"

// bind parses the request body into req and validates it.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewBadRequest(messageInvalidPayload)
	}
	return dto.Validate(req)
}

// callerID is the user id the auth gate attached to the request.
func callerID(c *fiber.Ctx) (string, error) {
	claim, ok := auth.UserFromContext(c)
	if !ok || claim.ID == "" {
		return "", apperrors.NewUnauthorized(auth.MessageInvalidToken)
	}
	return claim.ID, nil
}
