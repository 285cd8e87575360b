package notification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func newTestMailer(t *testing.T, handler http.Handler) *Mailer {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := gmail.NewService(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint(server.URL),
	)
	require.NoError(t, err)

	return &Mailer{gmail: service, from: "content-team@example.ch"}
}

func TestNotify_Success(t *testing.T) {
	var sentRaw string

	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages/send", func(w http.ResponseWriter, r *http.Request) {
		var message gmail.Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&message))
		sentRaw = message.Raw
		fmt.Fprint(w, `{"id": "msg-1"}`)
	})

	mailer := newTestMailer(t, mux)

	delivered, err := mailer.Notify(context.Background(), "anna@example.ch", "Anna",
		"https://docs.google.com/document/d/doc-1/edit")
	require.NoError(t, err)
	assert.True(t, delivered)

	decoded, err := base64.URLEncoding.DecodeString(sentRaw)
	require.NoError(t, err)
	mail := string(decoded)
	assert.Contains(t, mail, "To: anna@example.ch")
	assert.Contains(t, mail, "Content-Type: text/html")
	assert.Contains(t, mail, "Hallo Anna,")
	assert.Contains(t, mail, "https://docs.google.com/document/d/doc-1/edit")
	// Emoji subject must be MIME-word encoded, not raw.
	assert.Contains(t, mail, "Subject: =?UTF-8?")
}

func TestNotify_SendFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages/send", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid grant"}}`, http.StatusUnauthorized)
	})

	mailer := newTestMailer(t, mux)

	delivered, err := mailer.Notify(context.Background(), "anna@example.ch", "Anna", "https://docs.example/doc")
	assert.False(t, delivered)

	var notifErr *NotificationError
	require.ErrorAs(t, err, &notifErr)
}

func TestNotify_MissingRecipient(t *testing.T) {
	mailer := newTestMailer(t, http.NotFoundHandler())

	_, err := mailer.Notify(context.Background(), "", "Anna", "https://docs.example/doc")
	assert.Error(t, err)
}

func TestNotify_MissingURL(t *testing.T) {
	mailer := newTestMailer(t, http.NotFoundHandler())

	_, err := mailer.Notify(context.Background(), "anna@example.ch", "Anna", "")
	assert.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	raw := buildMessage("from@example.ch", "to@example.ch", "Betreff", "<p>Hallo</p>")
	lines := strings.Split(raw, "\r\n")
	assert.Equal(t, "From: from@example.ch", lines[0])
	assert.Contains(t, raw, "\r\n\r\n<p>Hallo</p>")
}
