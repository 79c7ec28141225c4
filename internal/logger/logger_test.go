package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	closeFn, err := Init("prod", file)
	require.NoError(t, err)

	zap.L().Info("visitor registered", zap.Int64("visitor_id", 7))
	closeFn()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"visitor_id":7`)
	assert.Contains(t, string(b), "visitor registered")
}

func TestInitWithoutFileKeepsNop(t *testing.T) {
	closeFn, err := Init("dev", "")
	require.NoError(t, err)
	closeFn()
}
