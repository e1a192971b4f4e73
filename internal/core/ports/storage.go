package ports

import (
	"context"
	"io"
	"time"
)

// StoredDocument is what the document store reports back after an upload.
type StoredDocument struct {
	URL      string
	Key      string
	FileName string
	Size     int64
}

// DocumentStore is the external file-storage collaborator used by the
// application workflow.
type DocumentStore interface {
	Store(ctx context.Context, key, fileName, contentType string, size int64, body io.Reader) (*StoredDocument, error)
	// PresignDownload returns a time-limited URL for retrieving the stored
	// object.
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}
