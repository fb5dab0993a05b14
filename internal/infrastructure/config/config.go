package config

import (
	"os"
	"strconv"
	"time"

	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"
	"detnet-agent/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Config is a struct that holds application configuration
type Config struct {
	Agent    AgentConfig
	Health   HealthConfig
	State    StateConfig
	Networks map[string]NetworkDefaults
}

// AgentConfig is a struct that holds watch-mode agent configuration
type AgentConfig struct {
	PollInterval time.Duration
	Backoff      BackoffConfig
}

// BackoffConfig is a struct that holds exponential backoff configuration
type BackoffConfig struct {
	Enabled     bool
	MaxInterval time.Duration
	Multiplier  float64
}

// HealthConfig is a struct that holds health check configuration
type HealthConfig struct {
	Port string
}

// StateConfig is a struct that holds local state storage configuration
type StateConfig struct {
	Directory string
}

// NetworkDefaults holds per-kind addressing defaults from the config file
type NetworkDefaults struct {
	Gateway string `yaml:"gateway"`
	CIDR    string `yaml:"cidr"`
}

// configFile is the optional YAML configuration file layout
type configFile struct {
	Networks map[string]NetworkDefaults `yaml:"networks"`
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader loads configuration from environment variables,
// merged with an optional YAML file pointed at by CONFIG_FILE
type EnvironmentConfigLoader struct {
	fileSystem interfaces.FileSystem
}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader(fileSystem interfaces.FileSystem) ConfigLoader {
	return &EnvironmentConfigLoader{
		fileSystem: fileSystem,
	}
}

// Load loads configuration from environment variables and the config file
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	config := &Config{
		Agent: AgentConfig{
			PollInterval: getEnvDurationOrDefault("POLL_INTERVAL", 5*time.Minute),
			Backoff: BackoffConfig{
				Enabled:     getEnvBoolOrDefault("BACKOFF_ENABLED", true),
				MaxInterval: getEnvDurationOrDefault("BACKOFF_MAX_INTERVAL", 30*time.Minute),
				Multiplier:  getEnvFloatOrDefault("BACKOFF_MULTIPLIER", 2.0),
			},
		},
		Health: HealthConfig{
			Port: getEnvOrDefault("HEALTH_PORT", "8090"),
		},
		State: StateConfig{
			Directory: getEnvOrDefault("STATE_DIR", defaultStateDirectory()),
		},
		Networks: map[string]NetworkDefaults{},
	}

	if err := l.loadFile(config); err != nil {
		return nil, err
	}

	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile merges the optional YAML file into the configuration
func (l *EnvironmentConfigLoader) loadFile(config *Config) error {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return nil
	}

	if !l.fileSystem.Exists(path) {
		return errors.NewValidationError("config file not found: "+path, nil)
	}

	content, err := l.fileSystem.ReadFile(path)
	if err != nil {
		return errors.NewSystemError("failed to read config file", err)
	}

	var file configFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return errors.NewValidationError("failed to parse config file", err)
	}

	for kind, defaults := range file.Networks {
		config.Networks[kind] = defaults
	}

	return nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	if config.Agent.PollInterval <= 0 {
		return errors.NewValidationError("invalid polling interval", nil)
	}
	if config.Agent.Backoff.Enabled && config.Agent.Backoff.Multiplier <= 1 {
		return errors.NewValidationError("invalid backoff multiplier", nil)
	}
	if config.Health.Port == "" {
		return errors.NewValidationError("health check port not configured", nil)
	}
	if config.State.Directory == "" {
		return errors.NewValidationError("state directory not configured", nil)
	}

	for kind, defaults := range config.Networks {
		if err := utils.ValidateGatewayInCIDR(defaults.Gateway, defaults.CIDR); err != nil {
			return errors.NewValidationError("invalid network defaults for kind "+kind, err)
		}
	}

	return nil
}

// defaultStateDirectory returns the platform default for local state
func defaultStateDirectory() string {
	if programData := os.Getenv("ProgramData"); programData != "" {
		return programData + string(os.PathSeparator) + "detnet"
	}
	return "/var/lib/detnet"
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
