package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken replaces the bearer token; empty means anonymous.
func (c *HTTPClient) SetToken(token string) { c.token = token }

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	if body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	e := &APIError{Status: resp.StatusCode, Message: body.Message}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case http.StatusForbidden:
		e.kind = ErrForbidden
		if body.Message == common.InvalidTokenMessage {
			e.kind = ErrUnauthorized
		}
	case http.StatusNotFound:
		e.kind = ErrNotFound
	}
	return e
}

// doJSON sends in (if non-nil) as JSON and decodes the response into out
// (if non-nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login stores the returned token on success.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var out models.Session
	err := c.doJSON(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]*models.File, error) {
	var out []*models.File
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload streams r as the "file" form field without buffering it.
func (c *HTTPClient) Upload(ctx context.Context, name string, r io.Reader) (*models.File, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		fw, err := mw.CreatePart(filePartHeader(name))
		if err == nil {
			_, err = io.Copy(fw, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", pr)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		File *models.File `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.File, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// filePartHeader describes the "file" form part, typed by extension the way
// browsers do.
func filePartHeader(name string) textproto.MIMEHeader {
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", ct)
	return h
}

// Download copies the file body into w and returns the byte count.
func (c *HTTPClient) Download(ctx context.Context, id int64, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/download/%d", id), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return io.Copy(w, resp.Body)
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil, nil)
}

func (c *HTTPClient) Share(ctx context.Context, id int64, email, message string) (*models.ShareResult, error) {
	var out models.ShareResult
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/send-file/%d", id), map[string]string{
		"email":   email,
		"message": message,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IsUnavailable reports whether err is a transport failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
