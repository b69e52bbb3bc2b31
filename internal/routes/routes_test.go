package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"feed_workspace/dto"
	"feed_workspace/internal/middleware"
	"feed_workspace/internal/repository/repotest"
	"feed_workspace/services"
)

// identityFromHeader substitutes the JWT middleware in tests: the X-User-Id
// header value becomes the trusted uid.
func identityFromHeader() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid := c.Get("X-User-Id"); uid != "" {
			c.Locals("user_id", uid)
		}
		return c.Next()
	}
}

func newTestApp(store *repotest.Store, limiter middleware.Limiter) *fiber.App {
	app := fiber.New()
	app.Use(identityFromHeader())
	Register(app, Deps{
		Posts:    services.NewPostService(store, zap.NewNop()),
		Likes:    services.NewLikeService(store),
		Comments: services.NewCommentService(store),
		Feed:     services.NewFeedService(store, store),
		Limiter:  limiter,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, uid string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("X-User-Id", uid)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodePost(t *testing.T, raw []byte) dto.PostView {
	t.Helper()
	var v dto.PostView
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestCreateCommentLikeFlow(t *testing.T) {
	store := repotest.NewStore()
	app := newTestApp(store, nil)
	author := bson.NewObjectID().Hex()
	commenter := bson.NewObjectID().Hex()

	resp, raw := doJSON(t, app, fiber.MethodPost, "/posts/", author,
		fiber.Map{"postText": "hello world"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	post := decodePost(t, raw)
	assert.Equal(t, author, post.UserID)

	resp, raw = doJSON(t, app, fiber.MethodPost, "/posts/"+post.ID+"/comments", commenter,
		fiber.Map{"text": "nice"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	post = decodePost(t, raw)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, 1, post.CommentCount)

	commentID := post.Comments[0].ID
	resp, raw = doJSON(t, app, fiber.MethodPost,
		"/posts/"+post.ID+"/comments/"+commentID+"/replies", author,
		fiber.Map{"text": "thanks"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	post = decodePost(t, raw)
	require.Len(t, post.Comments[0].Replies, 1)
	assert.Equal(t, 1, post.Comments[0].ReplyCount)
}

func TestLikeToggleOverHTTP(t *testing.T) {
	store := repotest.NewStore()
	app := newTestApp(store, nil)
	author := bson.NewObjectID().Hex()
	liker := bson.NewObjectID().Hex()

	_, raw := doJSON(t, app, fiber.MethodPost, "/posts/", author, fiber.Map{"postText": "like me"})
	post := decodePost(t, raw)

	resp, raw := doJSON(t, app, fiber.MethodPost, "/posts/"+post.ID+"/like", liker, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 1, decodePost(t, raw).LikeCount)

	resp, raw = doJSON(t, app, fiber.MethodPost, "/posts/"+post.ID+"/like", liker, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 0, decodePost(t, raw).LikeCount)
}

func TestMutationsRequireAuth(t *testing.T) {
	app := newTestApp(repotest.NewStore(), nil)
	postID := bson.NewObjectID().Hex()

	paths := []struct{ method, path string }{
		{fiber.MethodPost, "/posts/"},
		{fiber.MethodPut, "/posts/" + postID},
		{fiber.MethodPatch, "/posts/" + postID + "/hide"},
		{fiber.MethodDelete, "/posts/" + postID},
		{fiber.MethodPost, "/posts/" + postID + "/like"},
		{fiber.MethodPost, "/posts/" + postID + "/comments"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			resp, raw := doJSON(t, app, p.method, p.path, "", nil)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "unauthorized", body.Message)
		})
	}
}

func TestHideVisibilityOverHTTP(t *testing.T) {
	store := repotest.NewStore()
	app := newTestApp(store, nil)
	author := bson.NewObjectID().Hex()
	other := bson.NewObjectID().Hex()

	_, raw := doJSON(t, app, fiber.MethodPost, "/posts/", author, fiber.Map{"postText": "now you see me"})
	post := decodePost(t, raw)

	resp, raw := doJSON(t, app, fiber.MethodPatch, "/posts/"+post.ID+"/hide", author, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, decodePost(t, raw).IsHidden)

	// author still reads it, stranger and anonymous get 404
	resp, _ = doJSON(t, app, fiber.MethodGet, "/posts/"+post.ID, author, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, fiber.MethodGet, "/posts/"+post.ID, other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, fiber.MethodGet, "/posts/"+post.ID, "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// unhide restores public reads
	resp, raw = doJSON(t, app, fiber.MethodPatch, "/posts/"+post.ID+"/hide", author, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.False(t, decodePost(t, raw).IsHidden)
	resp, _ = doJSON(t, app, fiber.MethodGet, "/posts/"+post.ID, other, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteOverHTTP(t *testing.T) {
	store := repotest.NewStore()
	app := newTestApp(store, nil)
	author := bson.NewObjectID().Hex()

	_, raw := doJSON(t, app, fiber.MethodPost, "/posts/", author, fiber.Map{"postText": "short lived"})
	post := decodePost(t, raw)

	resp, _ := doJSON(t, app, fiber.MethodDelete, "/posts/"+post.ID, bson.NewObjectID().Hex(), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/posts/"+post.ID, author, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/posts/"+post.ID, author, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, fiber.MethodPost, "/posts/"+post.ID+"/like", author, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeedOverHTTP(t *testing.T) {
	store := repotest.NewStore()
	app := newTestApp(store, nil)

	for i := 0; i < 3; i++ {
		uid := bson.NewObjectID().Hex()
		_, raw := doJSON(t, app, fiber.MethodPost, "/posts/", uid,
			fiber.Map{"postText": fmt.Sprintf("post %d", i)})
		decodePost(t, raw)
	}

	resp, raw := doJSON(t, app, fiber.MethodGet, "/feed/?pageSize=2", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var feed dto.FeedResponse
	require.NoError(t, json.Unmarshal(raw, &feed))
	assert.Len(t, feed.Posts, 2)
	assert.True(t, feed.HasMore)

	resp, raw = doJSON(t, app, fiber.MethodGet, "/feed/?sort=bogus", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, fiber.MethodGet, "/feed/trending", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var trending dto.TrendingResponse
	require.NoError(t, json.Unmarshal(raw, &trending))
	assert.Len(t, trending.Posts, 3)
}

type denyLimiter struct{}

func (denyLimiter) Allow(string, string) bool { return false }

func TestRateLimitedMutations(t *testing.T) {
	app := newTestApp(repotest.NewStore(), denyLimiter{})
	uid := bson.NewObjectID().Hex()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/posts/", uid, fiber.Map{"postText": "nope"})
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// reads bypass the limiter entirely
	resp, _ = doJSON(t, app, fiber.MethodGet, "/feed/", uid, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestInvalidObjectIDParams(t *testing.T) {
	app := newTestApp(repotest.NewStore(), nil)
	uid := bson.NewObjectID().Hex()

	resp, _ := doJSON(t, app, fiber.MethodGet, "/posts/not-an-id", uid, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/feed/?author=not-an-id", uid, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
