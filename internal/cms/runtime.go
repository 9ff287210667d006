package cms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/segmentio/ksuid"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrNotFound          = errors.New("document not found")
)

// IDField is the key the runtime stores a document's id under.
const IDField = "id"

// Runtime is an in-memory host that dispatches collection hooks the way the
// framework's persistence pipeline does.
type Runtime struct {
	cfg    *Config
	logger *slog.Logger

	mu   sync.Mutex
	docs map[string]map[string]Document
}

func NewRuntime(cfg *Config, logger *slog.Logger) *Runtime {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runtime{
		cfg:    cfg,
		logger: logger,
		docs:   make(map[string]map[string]Document),
	}
}

func (r *Runtime) collection(slug string) (*Collection, error) {
	col := r.cfg.Collection(slug)
	if col == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, slug)
	}
	return col, nil
}

// Create runs the pre-save hooks, stores the result under a new id and
// returns it through the post-read hooks.
func (r *Runtime) Create(ctx context.Context, slug string, req *Request, data Document) (Document, error) {
	col, err := r.collection(slug)
	if err != nil {
		return nil, err
	}

	data, err = r.beforeChange(ctx, col, req, data, OperationCreate)
	if err != nil {
		return nil, err
	}

	id := ksuid.New().String()
	data[IDField] = id

	r.mu.Lock()
	if r.docs[slug] == nil {
		r.docs[slug] = make(map[string]Document)
	}
	r.docs[slug][id] = data
	r.mu.Unlock()

	r.logger.Debug("document created", "collection", slug, "id", id)
	return r.afterRead(ctx, col, req, data.Clone()), nil
}

// Update merges data over the stored document after the pre-save hooks ran.
func (r *Runtime) Update(ctx context.Context, slug, id string, req *Request, data Document) (Document, error) {
	col, err := r.collection(slug)
	if err != nil {
		return nil, err
	}

	existing, err := r.get(slug, id)
	if err != nil {
		return nil, err
	}

	data, err = r.beforeChange(ctx, col, req, data, OperationUpdate)
	if err != nil {
		return nil, err
	}

	merged := existing.Clone()
	for k, v := range data {
		merged[k] = v
	}
	merged[IDField] = id

	r.mu.Lock()
	r.docs[slug][id] = merged
	r.mu.Unlock()

	r.logger.Debug("document updated", "collection", slug, "id", id)
	return r.afterRead(ctx, col, req, merged.Clone()), nil
}

// FindByID returns the stored document through the post-read hooks.
func (r *Runtime) FindByID(ctx context.Context, slug, id string, req *Request) (Document, error) {
	col, err := r.collection(slug)
	if err != nil {
		return nil, err
	}
	doc, err := r.get(slug, id)
	if err != nil {
		return nil, err
	}
	return r.afterRead(ctx, col, req, doc), nil
}

// Delete removes the document, then runs the post-delete hooks. The first
// hook error is returned as the result of the delete.
func (r *Runtime) Delete(ctx context.Context, slug, id string, req *Request) error {
	col, err := r.collection(slug)
	if err != nil {
		return err
	}

	r.mu.Lock()
	doc, ok := r.docs[slug][id]
	if ok {
		delete(r.docs[slug], id)
	}
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, slug, id)
	}

	for _, h := range col.Hooks.AfterDelete {
		if err := h.AfterDelete(ctx, AfterDeleteArgs{Req: req, Doc: doc, ID: id}); err != nil {
			r.logger.Debug("after delete hook failed", "collection", slug, "id", id, "error", err)
			return err
		}
	}

	r.logger.Debug("document deleted", "collection", slug, "id", id)
	return nil
}

// Insert stores doc as-is without running any hook.
func (r *Runtime) Insert(slug string, doc Document) string {
	id, _ := doc[IDField].(string)
	if id == "" {
		id = ksuid.New().String()
	}
	stored := doc.Clone()
	if stored == nil {
		stored = Document{}
	}
	stored[IDField] = id

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.docs[slug] == nil {
		r.docs[slug] = make(map[string]Document)
	}
	r.docs[slug][id] = stored
	return id
}

func (r *Runtime) get(slug, id string) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[slug][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, slug, id)
	}
	return doc.Clone(), nil
}

func (r *Runtime) beforeChange(ctx context.Context, col *Collection, req *Request, data Document, op Operation) (Document, error) {
	data = data.Clone()
	if data == nil {
		data = Document{}
	}
	for _, h := range col.Hooks.BeforeChange {
		out, err := h.BeforeChange(ctx, BeforeChangeArgs{Req: req, Data: data, Operation: op})
		if err != nil {
			r.logger.Debug("before change hook failed", "collection", col.Slug, "operation", op, "error", err)
			return nil, err
		}
		if out != nil {
			data = out
		}
	}
	return data, nil
}

func (r *Runtime) afterRead(ctx context.Context, col *Collection, req *Request, doc Document) Document {
	for _, h := range col.Hooks.AfterRead {
		doc = h.AfterRead(ctx, AfterReadArgs{Req: req, Doc: doc})
	}
	return doc
}
