// Package publication wraps the external document-creation capability. A
// finished post becomes a Google Doc in the employee's Drive folder; the
// durable (url, id) reference pair is handed back to the engine.
package publication

import (
	"context"
	"fmt"
	"strings"
	"time"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/fivedigital/contentflow/internal/types"
)

// docURLFormat is the human-viewable URL for a created document.
const docURLFormat = "https://docs.google.com/document/d/%s/edit"

// titleDateLayout renders the de-CH date used in document titles.
const titleDateLayout = "02.01.2006"

// DocsPublisher creates Google Docs for approved posts.
type DocsPublisher struct {
	docs  *docs.Service
	drive *drive.Service
	now   func() time.Time
}

// NewDocsPublisher creates a publisher using the given Google API client
// options (credentials, scopes).
func NewDocsPublisher(ctx context.Context, opts ...option.ClientOption) (*DocsPublisher, error) {
	docsService, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &DocsPublisher{
		docs:  docsService,
		drive: driveService,
		now:   time.Now,
	}, nil
}

// DocTitle returns the document title for an employee's post published today.
func (p *DocsPublisher) DocTitle(employeeName string) string {
	return fmt.Sprintf("LinkedIn Post - %s - %s", employeeName, p.now().Format(titleDateLayout))
}

// Publish creates a document with the final text, moves it into the
// destination folder, and returns the durable reference pair. The engine
// guarantees at most one call per workflow approval.
func (p *DocsPublisher) Publish(ctx context.Context, text, employeeName, folderID string) (*types.PublicationRef, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &PublicationError{Message: "post text is empty"}
	}

	doc, err := p.docs.Documents.Create(&docs.Document{
		Title: p.DocTitle(employeeName),
	}).Context(ctx).Do()
	if err != nil {
		return nil, &PublicationError{
			Message: "failed to create document",
			Cause:   err,
		}
	}

	_, err = p.docs.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     text,
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, &PublicationError{
			Message: "failed to insert post text",
			Cause:   err,
		}
	}

	if folderID != "" {
		if err := p.moveToFolder(ctx, doc.DocumentId, folderID); err != nil {
			return nil, err
		}
	}

	return &types.PublicationRef{
		URL: fmt.Sprintf(docURLFormat, doc.DocumentId),
		ID:  doc.DocumentId,
	}, nil
}

// moveToFolder reparents the document into the destination folder.
func (p *DocsPublisher) moveToFolder(ctx context.Context, docID, folderID string) error {
	file, err := p.drive.Files.Get(docID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return &PublicationError{
			Message: "failed to read document parents",
			Cause:   err,
		}
	}

	call := p.drive.Files.Update(docID, nil).AddParents(folderID)
	if len(file.Parents) > 0 {
		call = call.RemoveParents(strings.Join(file.Parents, ","))
	}
	if _, err := call.Context(ctx).Do(); err != nil {
		return &PublicationError{
			Message: "failed to move document into folder",
			Cause:   err,
		}
	}
	return nil
}
