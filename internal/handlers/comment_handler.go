package handlers

import (
	"github.com/gofiber/fiber/v2"

	"feed_workspace/dto"
	"feed_workspace/services"
)

type CommentHandler struct {
	Comments *services.CommentService
}

// POST /posts/:postId/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}

	var body dto.CreateCommentDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	p, err := h.Comments.AddComment(c.Context(), postID, uid, body.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPostView(p, nil))
}

// POST /posts/:postId/comments/:commentId/replies
func (h *CommentHandler) CreateReply(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}
	commentID, err := objectIDParam(c, "commentId")
	if err != nil {
		return writeError(c, err)
	}

	var body dto.CreateReplyDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	p, err := h.Comments.AddReply(c.Context(), postID, commentID, uid, body.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPostView(p, nil))
}
