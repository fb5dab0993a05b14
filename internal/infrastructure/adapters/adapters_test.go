package adapters

import (
	"path/filepath"
	"testing"

	domainErrors "detnet-agent/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem(t *testing.T) {
	fs := NewRealFileSystem()
	dir := t.TempDir()

	t.Run("중간 디렉토리를 만들면서 파일 쓰기", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "state", "config.yaml")

		require.NoError(t, fs.WriteFile(path, []byte("networks: {}"), 0644))
		assert.True(t, fs.Exists(path))

		content, err := fs.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "networks: {}", string(content))
	})

	t.Run("없는 파일은 Exists가 false", func(t *testing.T) {
		assert.False(t, fs.Exists(filepath.Join(dir, "missing.yaml")))
	})

	t.Run("MkdirAll은 중첩 디렉토리 생성", func(t *testing.T) {
		path := filepath.Join(dir, "a", "b", "c")

		require.NoError(t, fs.MkdirAll(path, 0755))
		assert.True(t, fs.Exists(path))
	})
}

func TestNetAdapterInspector_없는어댑터(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	inspector := NewNetAdapterInspector(logger)

	_, err := inspector.Inspect("vEthernet (definitely-missing)")

	require.Error(t, err)
	assert.True(t, domainErrors.IsNotFoundError(err))
}

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()
	assert.False(t, clock.Now().IsZero())
}
