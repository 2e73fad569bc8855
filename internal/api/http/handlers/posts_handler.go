package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devconnector/api/internal/api/dto"
	"github.com/devconnector/api/internal/service"
)

const MessagePostRemoved = "Post removed"

// PostsHandler exposes the post feed.
type PostsHandler struct {
	posts *service.PostService
}

func NewPostsHandler(posts *service.PostService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.TextRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.UserContext(), userID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponse(post))
}

// List handles GET /api/posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.posts.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponses(posts))
}

// Get handles GET /api/posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponse(post))
}

// Delete handles DELETE /api/posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: MessagePostRemoved})
}

// Like handles PUT /api/posts/like/:id.
func (h *PostsHandler) Like(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	likes, err := h.posts.Like(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NonNilLikes(likes))
}

// Unlike handles PUT /api/posts/unlike/:id.
func (h *PostsHandler) Unlike(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	likes, err := h.posts.Unlike(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NonNilLikes(likes))
}

// Comment handles POST /api/posts/comment/:id.
func (h *PostsHandler) Comment(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.TextRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comments, err := h.posts.Comment(c.UserContext(), userID, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(dto.NonNilComments(comments))
}

// Uncomment handles DELETE /api/posts/comment/:id/:comment_id.
func (h *PostsHandler) Uncomment(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	comments, err := h.posts.Uncomment(c.UserContext(), userID, c.Params("id"), c.Params("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NonNilComments(comments))
}
