// Package cms models the host content-management framework: collections,
// their schema fields, documents, requests and the typed lifecycle hooks a
// plugin can register.
package cms

import (
	"context"

	"github.com/thebluefowl/cloudburrow/internal/field"
)

// FileField is the request attachment point of an uploaded file.
const FileField = "file"

// Document is the per-record data bag of a collection.
type Document map[string]any

// Clone returns a shallow copy. A nil document clones to nil.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Truthy reports whether key holds a value other than nil, false, "" or 0.
func (d Document) Truthy(key string) bool {
	switch v := d[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// File is an uploaded file payload.
type File struct {
	Name string
	Data []byte
}

// Request is the host request a lifecycle event belongs to.
type Request struct {
	Files map[string]*File
}

// File returns the payload attached under FileField, if any.
func (r *Request) File() *File {
	if r == nil || r.Files == nil {
		return nil
	}
	return r.Files[FileField]
}

// Operation names the write a pre-save hook runs for.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
)

type BeforeChangeArgs struct {
	Req       *Request
	Data      Document
	Operation Operation
}

type AfterDeleteArgs struct {
	Req *Request
	Doc Document
	ID  string
}

type AfterReadArgs struct {
	Req *Request
	Doc Document
}

// BeforeChangeHook runs before a document is written. A nil Document leaves
// the pending data unchanged; an error aborts the write.
type BeforeChangeHook interface {
	BeforeChange(ctx context.Context, args BeforeChangeArgs) (Document, error)
}

// AfterDeleteHook runs after a document is removed. An error fails the delete.
type AfterDeleteHook interface {
	AfterDelete(ctx context.Context, args AfterDeleteArgs) error
}

// AfterReadHook projects a document before it is returned to a caller.
type AfterReadHook interface {
	AfterRead(ctx context.Context, args AfterReadArgs) Document
}

type BeforeChangeFunc func(ctx context.Context, args BeforeChangeArgs) (Document, error)

func (f BeforeChangeFunc) BeforeChange(ctx context.Context, args BeforeChangeArgs) (Document, error) {
	return f(ctx, args)
}

type AfterDeleteFunc func(ctx context.Context, args AfterDeleteArgs) error

func (f AfterDeleteFunc) AfterDelete(ctx context.Context, args AfterDeleteArgs) error {
	return f(ctx, args)
}

type AfterReadFunc func(ctx context.Context, args AfterReadArgs) Document

func (f AfterReadFunc) AfterRead(ctx context.Context, args AfterReadArgs) Document {
	return f(ctx, args)
}

// Hooks holds the lifecycle hook slots of one collection.
type Hooks struct {
	BeforeChange []BeforeChangeHook
	AfterDelete  []AfterDeleteHook
	AfterRead    []AfterReadHook
}

func (h *Hooks) AddBeforeChange(hook BeforeChangeHook) { h.BeforeChange = append(h.BeforeChange, hook) }
func (h *Hooks) AddAfterDelete(hook AfterDeleteHook)   { h.AfterDelete = append(h.AfterDelete, hook) }
func (h *Hooks) AddAfterRead(hook AfterReadHook)       { h.AfterRead = append(h.AfterRead, hook) }

// Collection is a named schema and the hooks bound to it.
type Collection struct {
	Slug   string       `yaml:"slug"`
	Upload bool         `yaml:"upload,omitempty"`
	Fields []field.Spec `yaml:"fields"`
	Hooks  Hooks        `yaml:"-"`
}

// HasField reports whether a top-level field called name exists.
func (c *Collection) HasField(name string) bool {
	for _, f := range c.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Config is the framework configuration a plugin transforms.
type Config struct {
	Collections []*Collection `yaml:"collections"`
}

// Collection returns the collection with the given slug, or nil.
func (c *Config) Collection(slug string) *Collection {
	if c == nil {
		return nil
	}
	for _, col := range c.Collections {
		if col != nil && col.Slug == slug {
			return col
		}
	}
	return nil
}

// Plugin transforms a framework configuration.
type Plugin func(*Config) *Config

// Apply runs plugins in order.
func (c *Config) Apply(plugins ...Plugin) *Config {
	cfg := c
	for _, p := range plugins {
		cfg = p(cfg)
	}
	return cfg
}
