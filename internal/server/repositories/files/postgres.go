package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file row and fills in ID and UploadedAt.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (original_name, filename, file_path, mimetype, size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.OriginalName, file.FileName, file.FilePath, file.MimeType, file.Size, file.UploadedBy).
		Scan(&file.ID, &file.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// AttachRemoteLocator records where the mirror copy lives. Repeating the call
// with the same values is harmless.
func (r *PostgresRepository) AttachRemoteLocator(ctx context.Context, id int64, bucket, key string) error {
	query := `UPDATE files SET s3_bucket = $1, s3_key = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, bucket, key, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// List returns every file with its uploader's name, newest first. Files whose
// uploader no longer exists are reported as models.UnknownUploader.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.FileListItem, error) {
	query := `
		SELECT f.id, f.original_name, f.filename, f.file_path, f.mimetype, f.size,
		       f.uploaded_by, f.uploaded_at, f.s3_bucket, f.s3_key, u.username
		FROM files f
		LEFT JOIN users u ON f.uploaded_by = u.id
		ORDER BY f.uploaded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.FileListItem, 0)
	for rows.Next() {
		var (
			item       models.FileListItem
			uploadedBy sql.NullInt64
			username   sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.OriginalName, &item.FileName, &item.FilePath, &item.MimeType, &item.Size,
			&uploadedBy, &item.UploadedAt, &item.S3Bucket, &item.S3Key, &username); err != nil {
			return nil, err
		}
		item.UploadedBy = uploadedBy.Int64
		item.UploadedByUsername = models.UnknownUploader
		if username.Valid {
			item.UploadedByUsername = username.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the file row or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, original_name, filename, file_path, mimetype, size,
		       uploaded_by, uploaded_at, s3_bucket, s3_key
		FROM files WHERE id = $1
	`
	var (
		f          models.File
		uploadedBy sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.OriginalName, &f.FileName, &f.FilePath, &f.MimeType,
		&f.Size, &uploadedBy, &f.UploadedAt, &f.S3Bucket, &f.S3Key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	f.UploadedBy = uploadedBy.Int64
	return &f, nil
}

// Delete removes the row. Exactly one row must be affected; none means the
// file is already gone.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch ra {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
}
