package context

import (
	"os"
)

// EnvProvider supplies environment variable lookups. Production code reads the
// process environment through OSEnv; tests substitute a MapEnv so the real
// environment is never mutated.
type EnvProvider interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

// LookupEnv implements EnvProvider using os.LookupEnv.
func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed set of environment variables.
type MapEnv map[string]string

// LookupEnv implements EnvProvider.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// layeredEnv resolves keys from the first layer that defines them.
type layeredEnv []EnvProvider

func (l layeredEnv) LookupEnv(key string) (string, bool) {
	for _, layer := range l {
		if layer == nil {
			continue
		}
		if value, ok := layer.LookupEnv(key); ok {
			return value, true
		}
	}
	return "", false
}

// Getenv returns the value of key in env, or "" when it is unset.
func Getenv(env EnvProvider, key string) string {
	if env == nil {
		return ""
	}
	value, _ := env.LookupEnv(key)
	return value
}
