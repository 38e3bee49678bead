// Package models defines server-side data models persisted in the database.
package models

import "time"

// File describes one uploaded blob. The bytes live in the blob store; this
// record only holds locators into it.
type File struct {
	ID int64 `json:"id"`
	// OriginalName is the client-supplied display name, kept as is.
	OriginalName string `json:"original_name"`
	// FileName is the generated storage name, independent of OriginalName.
	FileName string `json:"filename"`
	// FilePath is the local copy. Internal only.
	FilePath string `json:"-"`
	// MimeType is whatever the client claimed.
	MimeType   string    `json:"mimetype"`
	Size       int64     `json:"size"`
	UploadedBy int64     `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`

	// S3Bucket and S3Key are set together after a confirmed mirror write.
	S3Bucket *string `json:"s3_bucket"`
	S3Key    *string `json:"s3_key"`
}

// HasRemote reports whether the record carries a complete remote locator.
func (f *File) HasRemote() bool {
	return f.S3Bucket != nil && f.S3Key != nil && *f.S3Bucket != "" && *f.S3Key != ""
}

// FileListItem is a File joined with its uploader's name.
type FileListItem struct {
	File
	UploadedByUsername string `json:"uploaded_by_username"`
}

// UnknownUploader is shown when the owning user row no longer exists.
const UnknownUploader = "Unknown"
