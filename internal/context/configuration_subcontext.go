// Package context provides slidedeck's access to configuration sources: the
// process environment, an optional .env file and the optional JSON user config
// file named by USER_CONFIG_PATH.
package context

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"

	"slidedeck/internal/logger"
)

// UserConfigPathKey is the environment variable naming the JSON user config file.
const UserConfigPathKey = "USER_CONFIG_PATH"

// ConfigurationSubcontext defines the interface for reading configuration sources.
// Every method reads its sources fresh; nothing is cached between calls.
type ConfigurationSubcontext interface {
	// Environment operations
	Environment() EnvProvider
	GetEnv(key string) string

	// User config file operations
	LoadUserConfig(env EnvProvider) map[string]string

	// File system operations
	FileExists(path string) bool
	ReadFile(path string) ([]byte, error)
}

// configurationSubcontext implements the ConfigurationSubcontext interface.
type configurationSubcontext struct {
	env        EnvProvider // Base environment, usually OSEnv
	dotEnvPath string      // Optional .env file layered beneath env
}

// NewConfigurationSubcontext creates a ConfigurationSubcontext reading from env.
// When dotEnvPath is non-empty the file is parsed on every call to Environment
// and its entries are visible wherever env does not define the key.
func NewConfigurationSubcontext(env EnvProvider, dotEnvPath string) ConfigurationSubcontext {
	if env == nil {
		env = OSEnv{}
	}
	return &configurationSubcontext{
		env:        env,
		dotEnvPath: dotEnvPath,
	}
}

// Environment returns a snapshot of the environment layers for one resolution.
func (c *configurationSubcontext) Environment() EnvProvider {
	if c.dotEnvPath == "" {
		return c.env
	}

	dotEnv, err := c.loadDotEnvFile(c.dotEnvPath)
	if err != nil {
		logger.Debug("Ignoring .env file", "path", c.dotEnvPath, "error", err)
		return c.env
	}
	return layeredEnv{c.env, dotEnv}
}

// GetEnv retrieves a single environment value, "" when unset.
func (c *configurationSubcontext) GetEnv(key string) string {
	return Getenv(c.Environment(), key)
}

// LoadUserConfig reads the JSON user config file named by USER_CONFIG_PATH in env.
// A missing path, a missing or unreadable file, and malformed JSON all yield an
// empty configuration. Only string values are kept.
func (c *configurationSubcontext) LoadUserConfig(env EnvProvider) map[string]string {
	path := Getenv(env, UserConfigPathKey)
	cfg := make(map[string]string)
	if path == "" || !c.FileExists(path) {
		return cfg
	}

	data, err := c.ReadFile(path)
	if err != nil {
		logger.Debug("User config file unreadable", "path", path, "error", err)
		return cfg
	}
	if len(data) == 0 {
		return cfg
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Debug("User config file is not a JSON object", "path", path, "error", err)
		return cfg
	}

	for key, value := range raw {
		if s, ok := value.(string); ok {
			cfg[key] = s
		}
	}
	return cfg
}

// loadDotEnvFile parses a .env file into a MapEnv.
func (c *configurationSubcontext) loadDotEnvFile(path string) (MapEnv, error) {
	data, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, err
	}
	return MapEnv(envMap), nil
}

// FileExists checks if a file or directory exists at the given path.
func (c *configurationSubcontext) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the contents of a file.
func (c *configurationSubcontext) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
