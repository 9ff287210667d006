package cms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentTruthy(t *testing.T) {
	doc := Document{
		"empty":  "",
		"name":   "a.png",
		"nil":    nil,
		"false":  false,
		"true":   true,
		"zero":   0,
		"one":    1,
		"float0": float64(0),
		"map":    map[string]any{},
	}

	for key, want := range map[string]bool{
		"empty": false, "name": true, "nil": false, "false": false, "true": true,
		"zero": false, "one": true, "float0": false, "map": true, "missing": false,
	} {
		assert.Equal(t, want, doc.Truthy(key), key)
	}
}

func TestDocumentClone(t *testing.T) {
	assert.Nil(t, Document(nil).Clone())

	doc := Document{"a": 1}
	c := doc.Clone()
	c["b"] = 2
	assert.NotContains(t, doc, "b")
}

func TestRequestFile(t *testing.T) {
	var nilReq *Request
	assert.Nil(t, nilReq.File())
	assert.Nil(t, (&Request{}).File())

	f := &File{Name: "a.png"}
	assert.Same(t, f, (&Request{Files: map[string]*File{FileField: f}}).File())
}

func TestRuntimeUnknownCollection(t *testing.T) {
	rt := NewRuntime(nil, nil)
	_, err := rt.Create(context.Background(), "media", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownCollection)
	assert.ErrorIs(t, rt.Delete(context.Background(), "media", "x", nil), ErrUnknownCollection)
}

func TestRuntimeBeforeChangeOrder(t *testing.T) {
	var calls []string
	col := &Collection{Slug: "media"}
	col.Hooks.AddBeforeChange(BeforeChangeFunc(func(_ context.Context, args BeforeChangeArgs) (Document, error) {
		calls = append(calls, "first")
		assert.Equal(t, OperationCreate, args.Operation)
		out := args.Data.Clone()
		out["stage"] = "first"
		return out, nil
	}))
	col.Hooks.AddBeforeChange(BeforeChangeFunc(func(_ context.Context, args BeforeChangeArgs) (Document, error) {
		calls = append(calls, "second")
		assert.Equal(t, "first", args.Data["stage"])
		return nil, nil
	}))

	rt := NewRuntime(&Config{Collections: []*Collection{col}}, nil)
	doc, err := rt.Create(context.Background(), "media", nil, Document{"title": "x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, "first", doc["stage"])
	assert.NotEmpty(t, doc[IDField])
}

func TestRuntimeBeforeChangeErrorAborts(t *testing.T) {
	cause := errors.New("rejected")
	col := &Collection{Slug: "media"}
	col.Hooks.AddBeforeChange(BeforeChangeFunc(func(context.Context, BeforeChangeArgs) (Document, error) {
		return nil, cause
	}))

	rt := NewRuntime(&Config{Collections: []*Collection{col}}, nil)
	_, err := rt.Create(context.Background(), "media", nil, Document{})
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, rt.docs["media"])
}

func TestRuntimeAfterReadDoesNotTouchStorage(t *testing.T) {
	col := &Collection{Slug: "media"}
	col.Hooks.AddAfterRead(AfterReadFunc(func(_ context.Context, args AfterReadArgs) Document {
		out := args.Doc.Clone()
		out["projected"] = true
		return out
	}))

	rt := NewRuntime(&Config{Collections: []*Collection{col}}, nil)
	id := rt.Insert("media", Document{"title": "x"})

	doc, err := rt.FindByID(context.Background(), "media", id, nil)
	require.NoError(t, err)
	assert.Equal(t, true, doc["projected"])
	assert.NotContains(t, rt.docs["media"][id], "projected")
}

func TestRuntimeDeleteRunsHooks(t *testing.T) {
	var deleted []string
	col := &Collection{Slug: "media"}
	col.Hooks.AddAfterDelete(AfterDeleteFunc(func(_ context.Context, args AfterDeleteArgs) error {
		deleted = append(deleted, args.ID)
		assert.Equal(t, "x", args.Doc["title"])
		return nil
	}))

	rt := NewRuntime(&Config{Collections: []*Collection{col}}, nil)
	id := rt.Insert("media", Document{"title": "x"})

	require.NoError(t, rt.Delete(context.Background(), "media", id, nil))
	assert.Equal(t, []string{id}, deleted)
	assert.ErrorIs(t, rt.Delete(context.Background(), "media", id, nil), ErrNotFound)
}

func TestRuntimeUpdateMissing(t *testing.T) {
	rt := NewRuntime(&Config{Collections: []*Collection{{Slug: "media"}}}, nil)
	_, err := rt.Update(context.Background(), "media", "nope", nil, Document{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfigApply(t *testing.T) {
	cfg := &Config{}
	out := cfg.Apply(func(c *Config) *Config {
		c.Collections = append(c.Collections, &Collection{Slug: "media"})
		return c
	})
	assert.NotNil(t, out.Collection("media"))
	assert.Nil(t, out.Collection("posts"))
	assert.False(t, (&Collection{}).HasField("x"))
}
