package routes

import (
	"github.com/gofiber/fiber/v2"

	"feed_workspace/internal/handlers"
	"feed_workspace/internal/middleware"
	"feed_workspace/services"
)

type Deps struct {
	Posts    *services.PostService
	Likes    *services.LikeService
	Comments *services.CommentService
	Feed     *services.FeedService
	Limiter  middleware.Limiter
}

// Register wires the whole HTTP surface. Reads are open to anonymous viewers;
// every mutation requires auth and passes the rate-limit collaborator.
func Register(app *fiber.App, d Deps) {
	if d.Limiter == nil {
		d.Limiter = middleware.NopLimiter{}
	}

	postH := &handlers.PostHandler{Posts: d.Posts}
	likeH := &handlers.LikeHandler{Likes: d.Likes}
	commentH := &handlers.CommentHandler{Comments: d.Comments}
	feedH := &handlers.FeedHandler{Feed: d.Feed}

	write := []fiber.Handler{
		middleware.RequireAuth(),
		middleware.RateLimit(d.Limiter, "write"),
	}

	posts := app.Group("/posts")
	posts.Post("/", append(write, postH.Create)...)
	posts.Get("/:postId", postH.Get)
	posts.Put("/:postId", append(write, postH.Update)...)
	posts.Patch("/:postId/hide", append(write, postH.Hide)...)
	posts.Delete("/:postId", append(write, postH.Delete)...)

	posts.Post("/:postId/like", append(write, likeH.TogglePost)...)
	posts.Post("/:postId/comments", append(write, commentH.Create)...)
	posts.Post("/:postId/comments/:commentId/like", append(write, likeH.ToggleComment)...)
	posts.Post("/:postId/comments/:commentId/replies", append(write, commentH.CreateReply)...)
	posts.Post("/:postId/comments/:commentId/replies/:replyId/like", append(write, likeH.ToggleReply)...)

	feed := app.Group("/feed")
	feed.Get("/", feedH.List)
	feed.Get("/trending", feedH.Trending)

	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
}
