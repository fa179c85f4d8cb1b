package store

import (
	"context"
	"time"

	"github.com/tessellaviz/tessella/pkg/observability"
)

// Observed wraps a Store and emits an observability event per operation.
type Observed struct {
	inner Store
}

// WithHooks wraps s so every operation reports to the registered store hooks.
func WithHooks(s Store) Store {
	return &Observed{inner: s}
}

func (o *Observed) Save(ctx context.Context, doc Document) error {
	start := time.Now()
	err := o.inner.Save(ctx, doc)
	observability.Store().OnStoreOp(ctx, "save", time.Since(start), err)
	return err
}

func (o *Observed) Get(ctx context.Context, id string) (Document, error) {
	start := time.Now()
	doc, err := o.inner.Get(ctx, id)
	observability.Store().OnStoreOp(ctx, "get", time.Since(start), err)
	return doc, err
}

func (o *Observed) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := o.inner.Delete(ctx, id)
	observability.Store().OnStoreOp(ctx, "delete", time.Since(start), err)
	return err
}

func (o *Observed) List(ctx context.Context, limit int) ([]Document, error) {
	start := time.Now()
	docs, err := o.inner.List(ctx, limit)
	observability.Store().OnStoreOp(ctx, "list", time.Since(start), err)
	return docs, err
}

func (o *Observed) Close(ctx context.Context) error {
	return o.inner.Close(ctx)
}

// Ensure Observed implements Store.
var _ Store = (*Observed)(nil)
