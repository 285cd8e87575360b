// Package notification wraps the external notification capability. Once a
// post is published, the employee gets an email pointing at the document.
package notification

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Mailer sends notification emails through the Gmail API.
type Mailer struct {
	gmail *gmail.Service
	from  string
}

// NewMailer creates a Mailer sending from the given address, using the given
// Google API client options (credentials, scopes).
func NewMailer(ctx context.Context, from string, opts ...option.ClientOption) (*Mailer, error) {
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Mailer{gmail: service, from: from}, nil
}

// Notify emails the employee that their post is ready, linking the published
// document. Returns the delivery acknowledgement.
func (m *Mailer) Notify(ctx context.Context, address, employeeName, docURL string) (bool, error) {
	if address == "" {
		return false, &NotificationError{Message: "recipient address is empty"}
	}
	if docURL == "" {
		return false, &NotificationError{Message: "publication URL is empty"}
	}

	raw := buildMessage(m.from, address, notificationSubject, buildEmailBody(employeeName, docURL))
	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := m.gmail.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return false, &NotificationError{
			Message: "failed to send email",
			Cause:   err,
		}
	}
	return true, nil
}

// buildMessage assembles an RFC 2822 HTML mail. The subject carries an emoji
// and must be MIME-word encoded.
func buildMessage(from, to, subject, htmlBody string) string {
	var sb strings.Builder
	if from != "" {
		sb.WriteString("From: " + from + "\r\n")
	}
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", subject) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	return sb.String()
}
