package types

import "time"

// UserImage represents an uploaded image file and its stored location.
// The binary content lives in blob storage under FilePath; the record
// here carries only metadata.
type UserImage struct {
	// ID is the unique identifier of the image record.
	ID string `json:"id" db:"id"`

	// FilePath is the blob storage key the content was saved under.
	FilePath string `json:"filePath" db:"file_path"`

	// FileSize is the content length in bytes.
	FileSize int64 `json:"fileSize" db:"file_size"`

	// FileMimeType is the content type reported at upload.
	FileMimeType string `json:"fileMimeType" db:"file_mime_type"`

	// FileOriginalName is the client-side file name at upload.
	FileOriginalName string `json:"fileOriginalName" db:"file_original_name"`

	// CreatedAt is the timestamp when the image was uploaded.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the record.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
