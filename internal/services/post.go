package services

import (
	"context"

	"github.com/illodev/technical-test-go/internal/events"
	"github.com/illodev/technical-test-go/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context) ([]types.Post, error)
	GetByID(ctx context.Context, id string) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, post types.Post) (types.Post, error)
	Delete(ctx context.Context, id string) error
}

// CreatePostInput carries the validated fields for post creation.
// AuthorID is taken from the request body as-is; it is not checked
// against the authenticated caller.
type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
	AuthorID  string
}

// UpdatePostInput carries the validated fields for a partial update.
// Nil pointers leave the stored value untouched.
type UpdatePostInput struct {
	Title     *string
	Content   *string
	Published *bool
	AuthorID  *string
}

// PostService encapsulates post use-cases.
type PostService struct {
	repo   PostRepository
	events *events.Publisher
}

func NewPostService(repo PostRepository, publisher *events.Publisher) *PostService {
	return &PostService{repo: repo, events: publisher}
}

func (s *PostService) List(ctx context.Context) ([]types.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) GetByID(ctx context.Context, id string) (types.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, input CreatePostInput) (types.Post, error) {
	post, err := s.repo.Create(ctx, types.Post{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  input.AuthorID,
	})
	if err != nil {
		return types.Post{}, err
	}
	s.events.Emit(ctx, events.PostCreated, map[string]string{"id": post.ID, "authorId": post.AuthorID})
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id string, input UpdatePostInput) (types.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Post{}, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.AuthorID != nil {
		post.AuthorID = *input.AuthorID
	}

	return s.repo.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Emit(ctx, events.PostDeleted, map[string]string{"id": id})
	return nil
}
