package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/model"
	"feed_workspace/services"
)

type FeedHandler struct {
	Feed *services.FeedService
}

// List godoc
// @Summary      List the feed
// @Description  Visibility-filtered, paginated posts with nested data attached
// @Tags         feed
// @Produce      json
// @Param        author    query     string  false  "Restrict to one author id"
// @Param        sort      query     string  false  "recency | likes | comments"
// @Param        page      query     int     false  "Zero-based page"
// @Param        pageSize  query     int     false  "Page size (max 100)"
// @Success      200       {object}  dto.FeedResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /feed [get]
func (h *FeedHandler) List(c *fiber.Ctx) error {
	q := model.FeedQuery{
		Sort:     c.Query("sort"),
		Page:     int64(c.QueryInt("page", 0)),
		PageSize: int64(c.QueryInt("pageSize", 0)),
	}
	if viewerID, ok := userIDFrom(c); ok {
		q.ViewerID = viewerID
	}
	if author := c.Query("author"); author != "" {
		oid, err := bson.ObjectIDFromHex(author)
		if err != nil {
			return writeError(c, errInvalidAuthor)
		}
		q.AuthorID = oid
	}

	resp, err := h.Feed.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// GET /feed/trending
func (h *FeedHandler) Trending(c *fiber.Ctx) error {
	resp, err := h.Feed.Trending(c.Context(), int64(c.QueryInt("limit", 0)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
