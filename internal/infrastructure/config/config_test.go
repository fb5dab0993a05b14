package config

import (
	"os"
	"testing"
	"time"

	domainErrors "detnet-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFileSystem은 FileSystem 인터페이스의 목 구현체입니다
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POLL_INTERVAL", "BACKOFF_ENABLED", "BACKOFF_MAX_INTERVAL",
		"BACKOFF_MULTIPLIER", "HEALTH_PORT", "STATE_DIR", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestEnvironmentConfigLoader_Load(t *testing.T) {
	t.Run("환경 변수가 없으면 기본값 사용", func(t *testing.T) {
		clearEnvironment(t)

		loader := NewEnvironmentConfigLoader(new(MockFileSystem))
		config, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, config.Agent.PollInterval)
		assert.True(t, config.Agent.Backoff.Enabled)
		assert.Equal(t, 30*time.Minute, config.Agent.Backoff.MaxInterval)
		assert.Equal(t, 2.0, config.Agent.Backoff.Multiplier)
		assert.Equal(t, "8090", config.Health.Port)
		assert.NotEmpty(t, config.State.Directory)
		assert.Empty(t, config.Networks)
	})

	t.Run("환경 변수가 기본값을 덮어씀", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("POLL_INTERVAL", "30s")
		t.Setenv("BACKOFF_ENABLED", "false")
		t.Setenv("HEALTH_PORT", "9090")
		t.Setenv("STATE_DIR", "/tmp/detnet-test")

		loader := NewEnvironmentConfigLoader(new(MockFileSystem))
		config, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, config.Agent.PollInterval)
		assert.False(t, config.Agent.Backoff.Enabled)
		assert.Equal(t, "9090", config.Health.Port)
		assert.Equal(t, "/tmp/detnet-test", config.State.Directory)
	})

	t.Run("잘못된 형식의 환경 변수는 기본값으로 폴백", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("POLL_INTERVAL", "not-a-duration")
		t.Setenv("BACKOFF_MULTIPLIER", "two")

		loader := NewEnvironmentConfigLoader(new(MockFileSystem))
		config, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, config.Agent.PollInterval)
		assert.Equal(t, 2.0, config.Agent.Backoff.Multiplier)
	})

	t.Run("설정 파일의 네트워크 기본값 병합", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("CONFIG_FILE", "/etc/detnet/config.yaml")

		content := []byte(`networks:
  wsl:
    gateway: 172.30.0.1
    cidr: 172.30.0.0/23
  hyperv:
    gateway: 192.168.100.1
    cidr: 192.168.100.0/24
`)

		fileSystem := new(MockFileSystem)
		fileSystem.On("Exists", "/etc/detnet/config.yaml").Return(true)
		fileSystem.On("ReadFile", "/etc/detnet/config.yaml").Return(content, nil)

		loader := NewEnvironmentConfigLoader(fileSystem)
		config, err := loader.Load()

		require.NoError(t, err)
		require.Len(t, config.Networks, 2)
		assert.Equal(t, "172.30.0.1", config.Networks["wsl"].Gateway)
		assert.Equal(t, "172.30.0.0/23", config.Networks["wsl"].CIDR)
		assert.Equal(t, "192.168.100.1", config.Networks["hyperv"].Gateway)
	})

	t.Run("설정 파일 부재는 검증 에러", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("CONFIG_FILE", "/etc/detnet/missing.yaml")

		fileSystem := new(MockFileSystem)
		fileSystem.On("Exists", "/etc/detnet/missing.yaml").Return(false)

		loader := NewEnvironmentConfigLoader(fileSystem)
		_, err := loader.Load()

		assert.True(t, domainErrors.IsValidationError(err))
	})

	t.Run("파싱할 수 없는 설정 파일은 검증 에러", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("CONFIG_FILE", "/etc/detnet/broken.yaml")

		fileSystem := new(MockFileSystem)
		fileSystem.On("Exists", "/etc/detnet/broken.yaml").Return(true)
		fileSystem.On("ReadFile", "/etc/detnet/broken.yaml").Return([]byte("networks: ["), nil)

		loader := NewEnvironmentConfigLoader(fileSystem)
		_, err := loader.Load()

		assert.True(t, domainErrors.IsValidationError(err))
	})

	t.Run("프리픽스 밖 게이트웨이 기본값은 검증 에러", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("CONFIG_FILE", "/etc/detnet/config.yaml")

		content := []byte(`networks:
  wsl:
    gateway: 10.0.0.1
    cidr: 172.30.0.0/23
`)

		fileSystem := new(MockFileSystem)
		fileSystem.On("Exists", "/etc/detnet/config.yaml").Return(true)
		fileSystem.On("ReadFile", "/etc/detnet/config.yaml").Return(content, nil)

		loader := NewEnvironmentConfigLoader(fileSystem)
		_, err := loader.Load()

		require.True(t, domainErrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "wsl")
	})

	t.Run("0 이하 폴링 간격은 검증 에러", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("POLL_INTERVAL", "0s")

		loader := NewEnvironmentConfigLoader(new(MockFileSystem))
		_, err := loader.Load()

		assert.True(t, domainErrors.IsValidationError(err))
	})

	t.Run("백오프 활성화 시 1 이하 배수는 검증 에러", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("BACKOFF_ENABLED", "true")
		t.Setenv("BACKOFF_MULTIPLIER", "1.0")

		loader := NewEnvironmentConfigLoader(new(MockFileSystem))
		_, err := loader.Load()

		assert.True(t, domainErrors.IsValidationError(err))
	})
}
