package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"path"
	"strings"
	"time"

	"github.com/illodev/technical-test-go/internal/events"
	"github.com/illodev/technical-test-go/types"
)

const (
	uploadPrefix    = "uploads"
	randomNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	randomNameLen   = 10
)

// UserImageRepository defines persistence operations for image metadata.
type UserImageRepository interface {
	GetByID(ctx context.Context, id string) (types.UserImage, error)
	Create(ctx context.Context, image types.UserImage) (types.UserImage, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore is the slice of object storage the image service needs.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Upload is a received file pending storage.
type Upload struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// UserImageService stores uploaded images: bytes in blob storage,
// metadata in the database.
type UserImageService struct {
	repo   UserImageRepository
	blobs  BlobStore
	events *events.Publisher
}

func NewUserImageService(repo UserImageRepository, blobs BlobStore, publisher *events.Publisher) *UserImageService {
	return &UserImageService{repo: repo, blobs: blobs, events: publisher}
}

// Create saves the upload's content under a generated path, then records
// the metadata. A blob save failure leaves no database record behind.
func (s *UserImageService) Create(ctx context.Context, upload Upload) (types.UserImage, error) {
	key := generateFilePath(upload.OriginalName, time.Now())

	size := int64(len(upload.Data))
	if err := s.blobs.Put(ctx, key, bytes.NewReader(upload.Data), size, upload.ContentType); err != nil {
		return types.UserImage{}, fmt.Errorf("saving file: %w", err)
	}

	image, err := s.repo.Create(ctx, types.UserImage{
		FilePath:         key,
		FileSize:         size,
		FileMimeType:     upload.ContentType,
		FileOriginalName: upload.OriginalName,
	})
	if err != nil {
		return types.UserImage{}, err
	}
	s.events.Emit(ctx, events.UserImageCreated, map[string]string{"id": image.ID, "filePath": image.FilePath})
	return image, nil
}

// Delete removes the blob first and the record second. A blob delete
// failure propagates and the record is kept, so the file is never
// orphaned silently.
func (s *UserImageService) Delete(ctx context.Context, id string) error {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, image.FilePath); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Emit(ctx, events.UserImageDeleted, map[string]string{"id": id, "filePath": image.FilePath})
	return nil
}

// generateFilePath builds "uploads/DDMMYY-HHMM-<random>.<ext>" keys,
// keeping the original file's extension when it has one.
func generateFilePath(originalName string, now time.Time) string {
	stamp := now.Format("020106-1504")
	name := fmt.Sprintf("%s-%s", stamp, randomString(randomNameLen))
	ext := strings.ToLower(path.Ext(originalName))
	return path.Join(uploadPrefix, name+ext)
}

func randomString(length int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(randomNameChars)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(0)
		}
		sb.WriteByte(randomNameChars[n.Int64()])
	}
	return sb.String()
}
