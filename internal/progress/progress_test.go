package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample-file.png")
	require.NoError(t, os.WriteFile(path, []byte("sample"), 0600))

	data, err := ReadFile(path, "READ")
	require.NoError(t, err)
	assert.Equal(t, "sample", string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"), "READ")
	assert.Error(t, err)
}
