package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetFlags(log.LstdFlags)

	path := filepath.Join(t.TempDir(), "selectkit.log")
	closer := Setup(path)
	log.Printf("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestSetupWithoutPath(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	closer := Setup("")
	log.Printf("discarded")
	assert.NoError(t, closer.Close())
}
