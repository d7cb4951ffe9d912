package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/illodev/technical-test-go/types"
)

func TestPostRepositoryCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs(
			sqlmock.AnyArg(),
			"Hello",
			"World",
			true,
			"author-1",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostRepository(db)
	post, err := repo.Create(context.Background(), types.Post{
		Title:     "Hello",
		Content:   "World",
		Published: true,
		AuthorID:  "author-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID == "" {
		t.Fatal("expected generated id")
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "published", "author_id", "created_at", "updated_at"}).
		AddRow(post.ID, "Hello", "World", true, "author-1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, published, author_id, created_at, updated_at")).
		WithArgs(post.ID).
		WillReturnRows(rows)

	fetched, err := repo.GetByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Title != "Hello" || !fetched.Published {
		t.Fatalf("unexpected post: %+v", fetched)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "published", "author_id", "created_at", "updated_at"}).
		AddRow("p1", "One", "A", true, "author-1", now, now).
		AddRow("p2", "Two", "B", false, "author-1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, published, author_id, created_at, updated_at")).
		WillReturnRows(rows)

	repo := NewPostRepository(db)
	posts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
}

func TestPostRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostRepository(db)
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
