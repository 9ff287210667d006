// Package hooks implements the collection lifecycle hooks that move uploaded
// files to the remote asset host and project the hosted asset back onto the
// document's url and filename.
package hooks

import (
	"context"

	"github.com/thebluefowl/cloudburrow/internal/cms"
	"github.com/thebluefowl/cloudburrow/internal/field"
	"github.com/thebluefowl/cloudburrow/internal/storage"
)

// OriginalDocKey holds the unprojected document on read results.
const OriginalDocKey = "original_doc"

var (
	_ cms.BeforeChangeHook = (*Set)(nil)
	_ cms.AfterDeleteHook  = (*Set)(nil)
	_ cms.AfterReadHook    = (*Set)(nil)
)

// Set binds the lifecycle hooks to a gateway.
type Set struct {
	gateway storage.Gateway
}

// New returns a hook set using gw. A nil gateway yields a set whose remote
// calls fail with storage.ErrNotConfigured.
func New(gw storage.Gateway) *Set {
	if gw == nil {
		gw = storage.Unconfigured{}
	}
	return &Set{gateway: gw}
}

// BeforeChange uploads the request's file and embeds the returned asset
// under field.GroupName. It returns nil, touching nothing, when the request
// carries no file or the data has no filename. Gateway errors are returned
// as-is.
func (s *Set) BeforeChange(ctx context.Context, args cms.BeforeChangeArgs) (cms.Document, error) {
	file := args.Req.File()
	if file == nil || len(file.Data) == 0 || !args.Data.Truthy("filename") {
		return nil, nil
	}

	filename, _ := args.Data["filename"].(string)
	if filename == "" {
		filename = file.Name
	}

	asset, err := s.gateway.Upload(ctx, file.Data, filename)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, storage.ErrNoAsset
	}

	out := args.Data.Clone()
	out[field.GroupName] = asset.Fields()
	return out, nil
}

// AfterDelete removes the remote asset of a deleted document, passing the
// embedded resource type along. Documents without an embedded public id are
// ignored.
func (s *Set) AfterDelete(ctx context.Context, args cms.AfterDeleteArgs) error {
	asset, ok := storage.AssetFromValue(args.Doc[field.GroupName])
	if !ok || asset.PublicID == "" {
		return nil
	}
	return s.gateway.Delete(ctx, asset)
}

// AfterRead implements cms.AfterReadHook with AfterRead.
func (s *Set) AfterRead(_ context.Context, args cms.AfterReadArgs) cms.Document {
	return AfterRead(args.Doc)
}

// AfterRead points url and filename at the hosted asset and keeps the input
// under OriginalDocKey. Documents without an embedded asset are returned
// unchanged. doc itself is never modified.
func AfterRead(doc cms.Document) cms.Document {
	asset, ok := storage.AssetFromValue(doc[field.GroupName])
	if !ok {
		return doc
	}

	out := doc.Clone()
	out[OriginalDocKey] = doc.Clone()
	out["url"] = asset.SecureURL
	out["filename"] = asset.PublicID
	return out
}
