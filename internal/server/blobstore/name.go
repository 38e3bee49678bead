package blobstore

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateName returns a collision-resistant storage name of the form
// file-<unixmillis>-<random>[.ext]. Only the extension of originalName is
// kept, and only when it is plain alphanumeric.
func GenerateName(originalName string) string {
	name := fmt.Sprintf("file-%d-%s", time.Now().UnixMilli(), uuid.NewString())
	if ext := safeExt(originalName); ext != "" {
		name += ext
	}
	return name
}

// RemoteKey maps a storage name to its object key in the bucket.
func RemoteKey(name string) string {
	return "files/" + name
}

func safeExt(originalName string) string {
	ext := filepath.Ext(originalName)
	if len(ext) < 2 || len(ext) > 16 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return strings.ToLower(ext)
}
