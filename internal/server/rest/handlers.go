package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/auth"
	"github.com/dmitrijs2005/fileshare/internal/server/blobstore"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/notify"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

// UserService is what the gateway needs from the credential store.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Authenticate(token string) (*auth.Claims, error)
}

// FileService is what the gateway needs from the file flows.
type FileService interface {
	Upload(ctx context.Context, r io.Reader, originalName, mimeType string, uploadedBy int64) (*models.File, error)
	List(ctx context.Context) ([]*models.FileListItem, error)
	Open(ctx context.Context, id int64) (*models.File, io.ReadCloser, error)
	Delete(ctx context.Context, id int64) (*blobstore.RemoveResult, error)
	Share(ctx context.Context, id int64, recipient, note, sharedBy, link string) (*notify.ShareResult, error)
}

const uploadField = "file"

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type uploadResponse struct {
	Message string       `json:"message"`
	File    *models.File `json:"file"`
}

type shareRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type shareResponse struct {
	Message      string `json:"message"`
	DownloadLink string `json:"downloadLink,omitempty"`
}

type userResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}

// fileID parses the {id} route parameter. Anything that is not a positive
// integer cannot name a file.
func fileID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, "Username, email and password are required")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "User created successfully", User: u})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, User: res.User})
}

func (s *HTTPServer) currentUser(w http.ResponseWriter, r *http.Request) {
	c, _ := ClaimsFromContext(r.Context())
	writeJSON(w, http.StatusOK, userResponse{ID: c.UserID, Username: c.Username, Role: c.Role})
}

func (s *HTTPServer) listFiles(w http.ResponseWriter, r *http.Request) {
	items, err := s.files.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// nextFilePart skips to the first part named uploadField that carries a
// file name. Other form fields are ignored.
func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		p, err := mr.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, common.ErrorNoFile
			}
			return nil, err
		}
		if p.FormName() == uploadField && p.FileName() != "" {
			return p, nil
		}
		p.Close()
	}
}

func (s *HTTPServer) upload(w http.ResponseWriter, r *http.Request) {
	c, _ := ClaimsFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+(1<<20))

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	part, err := nextFilePart(mr)
	if err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			writeError(w, http.StatusBadRequest, "File too large")
		default:
			writeError(w, http.StatusBadRequest, "No file uploaded")
		}
		return
	}
	defer part.Close()

	mimeType := part.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	f, err := s.files.Upload(r.Context(), part, part.FileName(), mimeType, c.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Message: "File uploaded successfully", File: f})
}

// contentDisposition quotes name for the header and adds an RFC 5987 form
// when it is not plain ASCII.
func contentDisposition(name string) string {
	var b strings.Builder
	ascii := true
	for _, r := range name {
		switch {
		case r == '"' || r == '\\' || r < 0x20 || r == 0x7f:
			b.WriteByte('_')
		case r > 0x7e:
			ascii = false
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	v := fmt.Sprintf(`attachment; filename="%s"`, b.String())
	if !ascii {
		v += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return v
}

func (s *HTTPServer) download(w http.ResponseWriter, r *http.Request) {
	id, ok := fileID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	f, rc, err := s.files.Open(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer rc.Close()

	ct := f.MimeType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Disposition", contentDisposition(f.OriginalName))
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn(r.Context(), "download interrupted", "id", id, "error", err)
	}
}

func (s *HTTPServer) deleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := fileID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	if _, err := s.files.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "File deleted successfully"})
}

// downloadLink points at the authenticated download route, using the
// configured public address when there is one.
func (s *HTTPServer) downloadLink(r *http.Request, id int64) string {
	base := strings.TrimRight(s.publicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
			scheme = strings.TrimSpace(strings.Split(p, ",")[0])
		}
		base = scheme + "://" + r.Host
	}
	return fmt.Sprintf("%s/api/download/%d", base, id)
}

func (s *HTTPServer) sendFile(w http.ResponseWriter, r *http.Request) {
	id, ok := fileID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	var req shareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, _ := ClaimsFromContext(r.Context())

	res, err := s.files.Share(r.Context(), id, req.Email, req.Message, c.Username, s.downloadLink(r, id))
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, "Recipient email is required")
			return
		}
		writeServiceError(w, err)
		return
	}

	if res.Sent {
		writeJSON(w, http.StatusOK, shareResponse{Message: "File link sent successfully"})
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{
		Message:      "Email not configured. Here is the download link:",
		DownloadLink: res.Link,
	})
}
