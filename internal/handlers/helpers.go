package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/dto"
	"feed_workspace/internal/apperr"
)

var errInvalidAuthor = apperr.Validation("invalid author id")

// userIDFrom reads the uid the auth middleware placed in Locals.
func userIDFrom(c *fiber.Ctx) (bson.ObjectID, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok {
			if oid, err := bson.ObjectIDFromHex(s); err == nil {
				return oid, true
			}
		}
	}
	return bson.NilObjectID, false
}

func objectIDParam(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return bson.NilObjectID, apperr.Validation("invalid " + name)
	}
	return oid, nil
}

// writeError owns the kind-to-status mapping for the whole HTTP surface.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindRateLimited:
		status = fiber.StatusTooManyRequests
	case apperr.KindUnavailable:
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.ErrorResponse{Message: err.Error()})
}
