package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		0:                 "0 B",
		1023:              "1023 B",
		1024:              "1.0 KiB",
		1536:              "1.5 KiB",
		10 << 20:          "10.0 MiB",
		3 * (1 << 30) / 2: "1.5 GiB",
	}
	for in, want := range cases {
		assert.Equal(t, want, HumanSize(in), in)
	}
}

func TestFileString(t *testing.T) {
	key := "files/x"
	f := &File{ID: 7, OriginalName: "notes.txt", Size: 2048, UploadedByUsername: "alice",
		UploadedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC), S3Key: &key}

	s := f.String()
	assert.True(t, strings.HasPrefix(s, "7 "))
	assert.Contains(t, s, "notes.txt")
	assert.Contains(t, s, "2.0 KiB")
	assert.Contains(t, s, "alice")
	assert.Contains(t, s, "[s3]")

	f.UploadedByUsername, f.S3Key = "", nil
	assert.NotContains(t, f.String(), "[s3]")
}
