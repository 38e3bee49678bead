// Package models holds the JSON shapes the CLI reads from the server.
package models

import (
	"fmt"
	"time"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Session is the login response.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type File struct {
	ID                 int64     `json:"id"`
	OriginalName       string    `json:"original_name"`
	MimeType           string    `json:"mimetype"`
	Size               int64     `json:"size"`
	UploadedAt         time.Time `json:"uploaded_at"`
	UploadedByUsername string    `json:"uploaded_by_username,omitempty"`
	S3Key              *string   `json:"s3_key,omitempty"`
}

// String renders one listing line.
func (f *File) String() string {
	by := f.UploadedByUsername
	if by == "" {
		by = "-"
	}
	remote := ""
	if f.S3Key != nil && *f.S3Key != "" {
		remote = " [s3]"
	}
	return fmt.Sprintf("%-6d %-32s %10s  %-12s %s%s",
		f.ID, f.OriginalName, HumanSize(f.Size), by, f.UploadedAt.Local().Format("2006-01-02 15:04"), remote)
}

// ShareResult is the send-file response. DownloadLink is only set when the
// server could not mail it.
type ShareResult struct {
	Message      string `json:"message"`
	DownloadLink string `json:"downloadLink,omitempty"`
}

// HumanSize formats n bytes with a binary unit.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
