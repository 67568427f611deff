package termio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegularFileIsNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, IsInteractive(f))
	assert.False(t, IsColorTerminal(f))
}

func TestPipeIsNotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	assert.False(t, IsInteractive(r))
	assert.False(t, IsColorTerminal(w))
}

func TestNilFile(t *testing.T) {
	assert.False(t, IsInteractive(nil))
	assert.False(t, IsColorTerminal(nil))
}
