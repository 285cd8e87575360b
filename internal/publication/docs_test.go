package publication

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// newTestPublisher wires the publisher against a fake Google API backend.
func newTestPublisher(t *testing.T, handler http.Handler) *DocsPublisher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ctx := context.Background()
	opts := []option.ClientOption{
		option.WithoutAuthentication(),
		option.WithEndpoint(server.URL),
	}

	docsService, err := docs.NewService(ctx, opts...)
	require.NoError(t, err)
	driveService, err := drive.NewService(ctx, opts...)
	require.NoError(t, err)

	return &DocsPublisher{
		docs:  docsService,
		drive: driveService,
		now:   func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) },
	}
}

func TestDocTitle(t *testing.T) {
	p := newTestPublisher(t, http.NotFoundHandler())
	assert.Equal(t, "LinkedIn Post - Anna Meier - 28.08.2026", p.DocTitle("Anna Meier"))
}

func TestPublish_Success(t *testing.T) {
	var inserted, moved bool

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/documents", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"documentId": "doc-123"}`)
	})
	mux.HandleFunc("/v1/documents/doc-123:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		inserted = true
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/files/doc-123", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, `{"parents": ["root"]}`)
			return
		}
		moved = true
		assert.Equal(t, "folder-1", r.URL.Query().Get("addParents"))
		assert.Equal(t, "root", r.URL.Query().Get("removeParents"))
		fmt.Fprint(w, `{}`)
	})

	p := newTestPublisher(t, mux)

	ref, err := p.Publish(context.Background(), "Heute launchen wir. 🚀", "Anna Meier", "folder-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-123", ref.ID)
	assert.Equal(t, "https://docs.google.com/document/d/doc-123/edit", ref.URL)
	assert.True(t, inserted)
	assert.True(t, moved)
}

func TestPublish_NoFolderSkipsMove(t *testing.T) {
	var driveCalled bool

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/documents", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"documentId": "doc-9"}`)
	})
	mux.HandleFunc("/v1/documents/doc-9:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		driveCalled = true
		fmt.Fprint(w, `{}`)
	})

	p := newTestPublisher(t, mux)

	ref, err := p.Publish(context.Background(), "Text", "Anna", "")
	require.NoError(t, err)
	assert.Equal(t, "doc-9", ref.ID)
	assert.False(t, driveCalled)
}

func TestPublish_EmptyText(t *testing.T) {
	p := newTestPublisher(t, http.NotFoundHandler())

	_, err := p.Publish(context.Background(), "   ", "Anna", "folder")
	var pubErr *PublicationError
	require.ErrorAs(t, err, &pubErr)
}

func TestPublish_CreateFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/documents", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota"}}`, http.StatusTooManyRequests)
	})

	p := newTestPublisher(t, mux)

	_, err := p.Publish(context.Background(), "Text", "Anna", "folder")
	var pubErr *PublicationError
	require.ErrorAs(t, err, &pubErr)
	assert.True(t, strings.Contains(pubErr.Message, "create"))
}
