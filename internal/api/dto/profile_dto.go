package dto

import (
	"time"

	"github.com/devconnector/api/internal/domain"
)

// ProfileRequest creates or updates the caller's profile.
type ProfileRequest struct {
	Company        string `json:"company" form:"company"`
	Website        string `json:"website" form:"website"`
	Location       string `json:"location" form:"location"`
	Bio            string `json:"bio" form:"bio"`
	Status         string `json:"status" form:"status" validate:"required" msg:"Status is required"`
	GitHubUsername string `json:"githubusername" form:"githubusername"`
	Skills         string `json:"skills" form:"skills" validate:"required" msg:"Skills is required"`
	YouTube        string `json:"youtube" form:"youtube"`
	Twitter        string `json:"twitter" form:"twitter"`
	Facebook       string `json:"facebook" form:"facebook"`
	LinkedIn       string `json:"linkedin" form:"linkedin"`
	Instagram      string `json:"instagram" form:"instagram"`
}

// Social collects the social links of the request.
func (r ProfileRequest) Social() domain.Social {
	return domain.Social{
		YouTube:   r.YouTube,
		Twitter:   r.Twitter,
		Facebook:  r.Facebook,
		LinkedIn:  r.LinkedIn,
		Instagram: r.Instagram,
	}
}

// ExperienceRequest adds an experience entry.
type ExperienceRequest struct {
	Title       string `json:"title" form:"title" validate:"required" msg:"Title is required"`
	Company     string `json:"company" form:"company" validate:"required" msg:"Company is required"`
	Location    string `json:"location" form:"location"`
	From        string `json:"from" form:"from" validate:"required,date" msg:"From date is required"`
	To          string `json:"to" form:"to" validate:"omitempty,date" msg:"To date is invalid"`
	Current     bool   `json:"current" form:"current"`
	Description string `json:"description" form:"description"`
}

// EducationRequest adds an education entry.
type EducationRequest struct {
	School       string `json:"school" form:"school" validate:"required" msg:"School is required"`
	Degree       string `json:"degree" form:"degree" validate:"required" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" form:"fieldofstudy" validate:"required" msg:"Field of study is required"`
	From         string `json:"from" form:"from" validate:"required,date" msg:"From date is required"`
	To           string `json:"to" form:"to" validate:"omitempty,date" msg:"To date is invalid"`
	Current      bool   `json:"current" form:"current"`
	Description  string `json:"description" form:"description"`
}

// Experience converts a validated request.
func (r ExperienceRequest) Experience() domain.Experience {
	from, _ := ParseDate(r.From)
	return domain.Experience{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        from,
		To:          optionalDate(r.To),
		Current:     r.Current,
		Description: r.Description,
	}
}

// Education converts a validated request.
func (r EducationRequest) Education() domain.Education {
	from, _ := ParseDate(r.From)
	return domain.Education{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         from,
		To:           optionalDate(r.To),
		Current:      r.Current,
		Description:  r.Description,
	}
}

// ProfileResponse is the JSON shape of a profile.
type ProfileResponse struct {
	ID             string              `json:"_id"`
	User           *domain.UserSummary `json:"user"`
	Company        string              `json:"company,omitempty"`
	Website        string              `json:"website,omitempty"`
	Location       string              `json:"location,omitempty"`
	Status         string              `json:"status"`
	Skills         []string            `json:"skills"`
	Bio            string              `json:"bio,omitempty"`
	GitHubUsername string              `json:"githubusername,omitempty"`
	Experience     []domain.Experience `json:"experience"`
	Education      []domain.Education  `json:"education"`
	Social         domain.Social       `json:"social"`
	Date           time.Time           `json:"date"`
}

// NewProfileResponse maps a profile.
func NewProfileResponse(p *domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:             p.ID,
		User:           p.User,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		Experience:     p.Experience,
		Education:      p.Education,
		Social:         p.Social,
		Date:           p.CreatedAt,
	}
	if resp.User == nil {
		resp.User = &domain.UserSummary{ID: p.UserID}
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Experience == nil {
		resp.Experience = []domain.Experience{}
	}
	if resp.Education == nil {
		resp.Education = []domain.Education{}
	}
	return resp
}

// NewProfileResponses maps a list of profiles.
func NewProfileResponses(profiles []domain.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, NewProfileResponse(&profiles[i]))
	}
	return out
}

func optionalDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil
	}
	return &t
}
