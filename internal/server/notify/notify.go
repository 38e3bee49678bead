// Package notify tells a recipient that a file was shared with them. When no
// mail backend is configured the share degrades to returning the link.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Sender delivers one HTML message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Share is everything a notification says about a shared file.
type Share struct {
	File      *models.File
	Recipient string
	Note      string
	SharedBy  string
	Link      string
}

// ShareResult reports whether mail went out. Link is always filled so the
// caller can hand it over directly when Sent is false.
type ShareResult struct {
	Sent bool
	Link string
}

var shareTemplate = template.Must(template.New("share").Parse(`
<h3>File Shared with You</h3>
<p>User {{.SharedBy}} has shared a file with you.</p>
<p><strong>File:</strong> {{.FileName}}</p>
<p><strong>Size:</strong> {{.SizeKB}} KB</p>
{{if .Note}}<p><strong>Message:</strong> {{.Note}}</p>
{{end}}<p><a href="{{.Link}}">Click here to download</a></p>
<p><small>This link requires authentication to access.</small></p>
`))

// Notifier composes share messages. A nil sender means mail is disabled.
type Notifier struct {
	sender Sender
	logger logging.Logger
}

func NewNotifier(sender Sender, logger logging.Logger) *Notifier {
	return &Notifier{sender: sender, logger: logger.With("module", "notify")}
}

// FromConfig wires an SMTP sender when mail credentials are configured and a
// link-only notifier otherwise.
func FromConfig(c *config.Config, logger logging.Logger) *Notifier {
	if !c.EmailEnabled() {
		return NewNotifier(nil, logger)
	}
	return NewNotifier(NewSMTPSender(c), logger)
}

// Enabled reports whether a mail backend is configured.
func (n *Notifier) Enabled() bool { return n.sender != nil }

// Share mails the link to s.Recipient. Delivery failures surface as
// common.ErrorInternal; they are never reported as sent.
func (n *Notifier) Share(ctx context.Context, s Share) (*ShareResult, error) {
	if strings.TrimSpace(s.Recipient) == "" {
		return nil, fmt.Errorf("%w: recipient email is required", common.ErrorValidation)
	}

	res := &ShareResult{Link: s.Link}
	if n.sender == nil {
		return res, nil
	}

	subject, body, err := Compose(s)
	if err != nil {
		n.logger.Error(ctx, "compose share mail", "error", err)
		return nil, common.ErrorInternal
	}

	if err := n.sender.Send(ctx, s.Recipient, subject, body); err != nil {
		n.logger.Error(ctx, "send share mail", "id", s.File.ID, "to", s.Recipient, "error", err)
		return nil, common.ErrorInternal
	}

	n.logger.Info(ctx, "share mail sent", "id", s.File.ID, "to", s.Recipient)
	res.Sent = true
	return res, nil
}

// Compose renders subject and HTML body. User supplied text is escaped.
func Compose(s Share) (string, string, error) {
	var buf bytes.Buffer
	err := shareTemplate.Execute(&buf, map[string]any{
		"SharedBy": s.SharedBy,
		"FileName": s.File.OriginalName,
		"SizeKB":   fmt.Sprintf("%.2f", float64(s.File.Size)/1024),
		"Note":     s.Note,
		"Link":     s.Link,
	})
	if err != nil {
		return "", "", err
	}
	return "File shared: " + s.File.OriginalName, buf.String(), nil
}
