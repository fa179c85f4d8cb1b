// Package store persists painted layouts as documents so they can be
// retrieved later by ID, primarily through the API server. Backends: an
// in-memory store for tests and single-process use, and MongoDB for
// deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tessellaviz/tessella/pkg/errors"
	"github.com/tessellaviz/tessella/pkg/geom"
	"github.com/tessellaviz/tessella/pkg/paint"
)

// Document is a stored paint result.
type Document struct {
	// ID is a UUID assigned at save time.
	ID string `json:"id" bson:"_id"`

	// Name is the layout name the document was painted from.
	Name string `json:"name,omitempty" bson:"name,omitempty"`

	// LayoutHash is the content hash of the source layout.
	LayoutHash string `json:"layout_hash,omitempty" bson:"layout_hash,omitempty"`

	// Mutation and Seed are the paint inputs, kept for reproducibility.
	Mutation float64 `json:"mutation" bson:"mutation"`
	Seed     uint64  `json:"seed" bson:"seed"`

	// Canvas is the integer bounding box of the painted layout.
	Canvas geom.IntRect `json:"canvas" bson:"canvas"`

	// Attrs are the painted node attributes in pre-order.
	Attrs []paint.NodeAttrs `json:"attrs" bson:"attrs"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewDocument wraps a paint result in a Document with a fresh UUID.
func NewDocument(result *paint.Result) Document {
	return Document{
		ID:         uuid.NewString(),
		Name:       result.LayoutName,
		LayoutHash: result.LayoutHash,
		Mutation:   result.Mutation,
		Seed:       result.Seed,
		Canvas:     result.Canvas,
		Attrs:      result.Attrs,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is the interface all document store backends implement.
type Store interface {
	// Save persists a document.
	Save(ctx context.Context, doc Document) error

	// Get retrieves a document by ID. Returns a DOCUMENT_NOT_FOUND error
	// when the ID is unknown.
	Get(ctx context.Context, id string) (Document, error)

	// Delete removes a document by ID. Returns a DOCUMENT_NOT_FOUND error
	// when the ID is unknown.
	Delete(ctx context.Context, id string) error

	// List returns the most recent documents, newest first, up to limit.
	List(ctx context.Context, limit int) ([]Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// notFound builds the standard missing-document error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
}
