// Package blobstore keeps uploaded bytes on local disk and, when a bucket is
// configured, mirrors them to an S3-compatible object store.
//
// The local copy is written first and is the source of truth for the upload
// request. The mirror is best-effort: its failures are logged and counted but
// never fail the calling operation. Reads prefer the mirror and fall back to
// the local copy.
package blobstore
