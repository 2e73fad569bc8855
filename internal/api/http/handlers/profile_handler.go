package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devconnector/api/internal/api/dto"
	"github.com/devconnector/api/internal/service"
)

const MessageUserDeleted = "User deleted"

// ProfileHandler exposes profile, experience, education and GitHub routes.
type ProfileHandler struct {
	profiles *service.ProfileService
	auth     *service.AuthService
	github   *service.GitHubService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, authService *service.AuthService, github *service.GitHubService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: authService, github: github}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.GetMine(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.Upsert(c.UserContext(), userID, service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		Social:         req.Social(),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	profiles, err := h.profiles.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponses(profiles))
}

// ByUser handles GET /api/profile/user/:user_id.
func (h *ProfileHandler) ByUser(c *fiber.Ctx) error {
	profile, err := h.profiles.GetByUserID(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// DeleteAccount handles DELETE /api/profile. It removes the profile, the
// user and the user's posts.
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.auth.DeleteAccount(c.UserContext(), userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: MessageUserDeleted})
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.ExperienceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.profiles.AddExperience(c.UserContext(), userID, req.Experience())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RemoveExperience(c.UserContext(), userID, c.Params("exp_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.EducationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.profiles.AddEducation(c.UserContext(), userID, req.Education())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RemoveEducation(c.UserContext(), userID, c.Params("edu_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

// GitHubRepos handles GET /api/profile/github/:username.
func (h *ProfileHandler) GitHubRepos(c *fiber.Ctx) error {
	repos, err := h.github.Repos(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(repos)
}
