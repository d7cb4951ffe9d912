package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/illodev/technical-test-go/types"
)

func boolPtr(b bool) *bool { return &b }

func createTestPost(t *testing.T, env *testEnv, token string) types.Post {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/posts", token, CreatePostRequest{
		Title:     "Hello",
		Content:   "World",
		Published: boolPtr(true),
		AuthorID:  "author-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[types.Post](t, rec)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/posts", "", CreatePostRequest{
		Title:     "Hello",
		Content:   "World",
		Published: boolPtr(true),
		AuthorID:  "author-1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env.posts.creates != 0 {
		t.Fatal("handler must not run for an unauthenticated request")
	}
}

func TestCreatePostWithCookieToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t)

	body := CreatePostRequest{Title: "Hi", Content: "There", Published: boolPtr(false), AuthorID: "author-1"}
	rec := env.doWithCookie(t, http.MethodPost, "/posts", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("cookie token: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBearerHeaderTakesPrecedenceOverCookie(t *testing.T) {
	env := newTestEnv(t)

	// A malformed bearer header must fail even when a valid cookie rides along.
	body := CreatePostRequest{Title: "Hi", Content: "There", Published: boolPtr(false), AuthorID: "author-1"}
	rec := env.doWithCookieAndHeader(t, http.MethodPost, "/posts", env.userToken(t), "Bearer not-a-token", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected header to win and fail with 401, got %d", rec.Code)
	}
	if env.posts.creates != 0 {
		t.Fatal("handler must not run when the bearer token is invalid")
	}
}

func TestPostValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t)

	rec := env.do(t, http.MethodPost, "/posts", token, CreatePostRequest{
		Title:     "",
		Content:   "World",
		Published: boolPtr(true),
		AuthorID:  "author-1",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[apiError](t, rec)
	if len(body.Errors) == 0 || body.Errors[0].Field != "title" {
		t.Fatalf("expected title violation, got %+v", body)
	}
}

func TestPostReadsArePublic(t *testing.T) {
	env := newTestEnv(t)
	post := createTestPost(t, env, env.userToken(t))

	rec := env.do(t, http.MethodGet, "/posts", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	posts := decodeBody[[]types.Post](t, rec)
	if len(posts) != 1 {
		t.Fatalf("expected one post, got %d", len(posts))
	}

	rec = env.do(t, http.MethodGet, "/posts/"+post.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
}

func TestGetPostNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/posts/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Post not found") {
		t.Fatalf("expected plain not-found message, got %q", rec.Body.String())
	}
}

func TestUpdatePost(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t)
	post := createTestPost(t, env, token)

	title := "Updated"
	rec := env.do(t, http.MethodPut, "/posts/"+post.ID, token, UpdatePostRequest{Title: &title})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[types.Post](t, rec)
	if updated.Title != "Updated" {
		t.Fatalf("title not updated: %+v", updated)
	}
	if updated.Content != "World" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
}

func TestDeletePostIsNotIdempotent(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t)
	post := createTestPost(t, env, token)

	rec := env.do(t, http.MethodDelete, "/posts/"+post.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first delete: expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("204 must carry an empty body, got %q", rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/posts/"+post.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}
