package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/illodev/technical-test-go/types"
)

// UserImageRepository handles persistence for uploaded image metadata.
type UserImageRepository struct {
	db *sql.DB
}

func NewUserImageRepository(db *sql.DB) *UserImageRepository {
	return &UserImageRepository{db: db}
}

func (r *UserImageRepository) GetByID(ctx context.Context, id string) (types.UserImage, error) {
	const query = `
		SELECT id, file_path, file_size, file_mime_type, file_original_name, created_at, updated_at
		FROM user_images
		WHERE id = $1`
	var image types.UserImage
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&image.ID,
		&image.FilePath,
		&image.FileSize,
		&image.FileMimeType,
		&image.FileOriginalName,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.UserImage{}, ErrNotFound
		}
		return types.UserImage{}, err
	}
	return image, nil
}

func (r *UserImageRepository) Create(ctx context.Context, image types.UserImage) (types.UserImage, error) {
	now := time.Now()
	image.ID = uuid.NewString()
	image.CreatedAt = now
	image.UpdatedAt = now

	const query = `
		INSERT INTO user_images (id, file_path, file_size, file_mime_type, file_original_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		image.ID,
		image.FilePath,
		image.FileSize,
		image.FileMimeType,
		image.FileOriginalName,
		image.CreatedAt,
		image.UpdatedAt,
	); err != nil {
		return types.UserImage{}, err
	}
	return image, nil
}

func (r *UserImageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM user_images WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
