package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// Asset is the metadata record returned after a successful upload.
type Asset struct {
	PublicID         string `json:"public_id" yaml:"public_id"`
	SecureURL        string `json:"secure_url" yaml:"secure_url"`
	Format           string `json:"format" yaml:"format"`
	ResourceType     string `json:"resource_type" yaml:"resource_type"`
	OriginalFilename string `json:"original_filename" yaml:"original_filename"`
	Width            int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height           int    `json:"height,omitempty" yaml:"height,omitempty"`
	Bytes            int64  `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	IsPrivate        bool   `json:"isPrivateFile,omitempty" yaml:"isPrivateFile,omitempty"`
}

// Fields renders the asset as the value embedded into a document.
// Optional attributes are only present when set.
func (a *Asset) Fields() map[string]any {
	m := map[string]any{
		"public_id":         a.PublicID,
		"secure_url":        a.SecureURL,
		"format":            a.Format,
		"resource_type":     a.ResourceType,
		"original_filename": a.OriginalFilename,
	}
	if a.Width > 0 {
		m["width"] = a.Width
	}
	if a.Height > 0 {
		m["height"] = a.Height
	}
	if a.Bytes > 0 {
		m["bytes"] = a.Bytes
	}
	if a.IsPrivate {
		m["isPrivateFile"] = true
	}
	return m
}

// AssetFromValue reads an embedded asset back out of a document value.
// It accepts the map form produced by Fields as well as Asset values.
func AssetFromValue(v any) (*Asset, bool) {
	switch t := v.(type) {
	case *Asset:
		return t, t != nil
	case Asset:
		return &t, true
	case map[string]any:
		return &Asset{
			PublicID:         str(t["public_id"]),
			SecureURL:        str(t["secure_url"]),
			Format:           str(t["format"]),
			ResourceType:     str(t["resource_type"]),
			OriginalFilename: str(t["original_filename"]),
			Width:            int(num(t["width"])),
			Height:           int(num(t["height"])),
			Bytes:            num(t["bytes"]),
			IsPrivate:        t["isPrivateFile"] == true,
		}, true
	default:
		return nil, false
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// ResourceType classifies a file the way the hosting service does:
// image, video or raw.
func ResourceType(filename string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return "image"
	case strings.HasPrefix(ct, "video/"), strings.HasPrefix(ct, "audio/"):
		return "video"
	default:
		return "raw"
	}
}

// Format returns the lowercase extension of filename without the dot.
func Format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
