package handlers

import (
	"github.com/gofiber/fiber/v2"

	"feed_workspace/dto"
	"feed_workspace/services"
)

type PostHandler struct {
	Posts *services.PostService
}

// Create godoc
// @Summary      Create a post
// @Description  Create a new post with text and/or image URLs
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body      dto.CreatePostDTO  true  "Post payload"
// @Success      201   {object}  dto.PostView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}

	var body dto.CreatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	p, err := h.Posts.Create(c.Context(), uid, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPostView(p, nil))
}

// GET /posts/:postId
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}
	viewerID, _ := userIDFrom(c) // zero id = anonymous

	p, err := h.Posts.Get(c.Context(), postID, viewerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPostView(p, nil))
}

// PUT /posts/:postId
func (h *PostHandler) Update(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}

	var body dto.UpdatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
	}

	p, err := h.Posts.Update(c.Context(), postID, uid, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPostView(p, nil))
}

// PATCH /posts/:postId/hide
func (h *PostHandler) Hide(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.Posts.ToggleHidden(c.Context(), postID, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPostView(p, nil))
}

// DELETE /posts/:postId
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized"})
	}
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.Posts.Delete(c.Context(), postID, uid); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
