package handlers

import (
	"github.com/gofiber/fiber/v2"

	"feed_workspace/dto"
	"feed_workspace/model"
	"feed_workspace/services"
)

type LikeHandler struct {
	Likes *services.LikeService
}

// TogglePost godoc
// @Summary      Toggle a like on a post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post id"
// @Success      200     {object}  dto.PostView
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /posts/{postId}/like [post]
func (h *LikeHandler) TogglePost(c *fiber.Ctx) error {
	return h.toggle(c, false, false)
}

// POST /posts/:postId/comments/:commentId/like
func (h *LikeHandler) ToggleComment(c *fiber.Ctx) error {
	return h.toggle(c, true, false)
}

// POST /posts/:postId/comments/:commentId/replies/:replyId/like
func (h *LikeHandler) ToggleReply(c *fiber.Ctx) error {
	return h.toggle(c, true, true)
}

func (h *LikeHandler) toggle(c *fiber.Ctx, withComment, withReply bool) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}

	var path model.LikePath
	if withComment {
		if path.CommentID, err = objectIDParam(c, "commentId"); err != nil {
			return writeError(c, err)
		}
	}
	if withReply {
		if path.ReplyID, err = objectIDParam(c, "replyId"); err != nil {
			return writeError(c, err)
		}
	}

	p, err := h.Likes.Toggle(c.Context(), postID, path, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPostView(p, nil))
}
