package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFieldsRoundTrip(t *testing.T) {
	a := &Asset{
		PublicID:         "media/sample",
		SecureURL:        "https://res.cloudinary.com/demo/image/upload/media/sample.png",
		Format:           "png",
		ResourceType:     "image",
		OriginalFilename: "sample",
		Width:            640,
		Height:           480,
		Bytes:            1024,
	}

	m := a.Fields()
	assert.Equal(t, 640, m["width"])
	assert.NotContains(t, m, "isPrivateFile")

	back, ok := AssetFromValue(m)
	require.True(t, ok)
	assert.Equal(t, a, back)
}

func TestAssetFieldsOmitsZeroOptionals(t *testing.T) {
	m := (&Asset{PublicID: "x"}).Fields()
	assert.Len(t, m, 5)
}

func TestAssetFromValue(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		wantOK bool
		wantID string
	}{
		{"map", map[string]any{"public_id": "sample-public-id"}, true, "sample-public-id"},
		{"json numbers", map[string]any{"public_id": "p", "width": float64(10)}, true, "p"},
		{"struct", Asset{PublicID: "s"}, true, "s"},
		{"pointer", &Asset{PublicID: "ptr"}, true, "ptr"},
		{"nil pointer", (*Asset)(nil), false, ""},
		{"nil", nil, false, ""},
		{"string", "nope", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := AssetFromValue(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, a.PublicID)
			}
		})
	}
}

func TestResourceTypeAndFormat(t *testing.T) {
	assert.Equal(t, "image", ResourceType("photo.PNG"))
	assert.Equal(t, "image", ResourceType("photo.jpg"))
	assert.Equal(t, "raw", ResourceType("notes.bin"))
	assert.Equal(t, "raw", ResourceType("README"))

	assert.Equal(t, "png", Format("photo.PNG"))
	assert.Equal(t, "", Format("README"))
}

func TestServiceError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := error(&ServiceError{Provider: "cloudinary", Op: "upload", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "cloudinary upload: quota exceeded", err.Error())

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upload", se.Op)
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.Upload(context.Background(), []byte("x"), "x.png")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, Unconfigured{}.Delete(context.Background(), &Asset{PublicID: "x"}), ErrNotConfigured)
}
