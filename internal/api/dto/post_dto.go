package dto

import (
	"time"

	"github.com/devconnector/api/internal/domain"
)

// TextRequest is the body of post and comment creation.
type TextRequest struct {
	Text string `json:"text" form:"text" validate:"required" msg:"Text is required"`
}

// PostResponse is the JSON shape of a post.
type PostResponse struct {
	ID       string           `json:"_id"`
	User     string           `json:"user"`
	Text     string           `json:"text"`
	Name     string           `json:"name"`
	Avatar   string           `json:"avatar"`
	Likes    []domain.Like    `json:"likes"`
	Comments []domain.Comment `json:"comments"`
	Date     time.Time        `json:"date"`
}

// NewPostResponse maps a post.
func NewPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:       p.ID,
		User:     p.UserID,
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    NonNilLikes(p.Likes),
		Comments: NonNilComments(p.Comments),
		Date:     p.CreatedAt,
	}
}

// NewPostResponses maps a list of posts.
func NewPostResponses(posts []domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}
	return out
}

// NonNilLikes keeps empty lists serialized as [].
func NonNilLikes(likes []domain.Like) []domain.Like {
	if likes == nil {
		return []domain.Like{}
	}
	return likes
}

// NonNilComments keeps empty lists serialized as [].
func NonNilComments(comments []domain.Comment) []domain.Comment {
	if comments == nil {
		return []domain.Comment{}
	}
	return comments
}
