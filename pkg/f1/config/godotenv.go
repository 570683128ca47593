package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
)

type EnvLoader struct {
	logger logger
}

type logger interface {
	Debugf(format string, a ...any)
	Infof(format string, a ...any)
	Warnf(format string, a ...any)
	Fatalf(format string, a ...any)
}

// NewEnvFile loads <folder>/.env and then the environment specific override file.
// Values already present in the process environment are never overwritten.
func NewEnvFile(folder string, l logger) Config {
	conf := &EnvLoader{logger: l}
	conf.read(folder)

	return conf
}

func (e *EnvLoader) read(folder string) {
	var (
		defaultFile  = folder + defaultFileName
		overrideFile = folder + defaultOverrideFileName
		env          = e.Get("APP_ENV")
	)

	// snapshot the real environment so files never shadow it
	initialEnv := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			initialEnv[k] = v
		}
	}

	err := godotenv.Load(defaultFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Fatalf("Failed to load config from file: %v, Err: %v", defaultFile, err)
		}

		e.logger.Debugf("Failed to load config from file: %v, Err: %v", defaultFile, err)
	} else {
		e.logger.Infof("Loaded config from file: %v", defaultFile)
	}

	if env != "" {
		overrideFile = folder + "/." + env + ".env"
	}

	// the override file is allowed to replace values coming from .env
	err = godotenv.Overload(overrideFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Fatalf("Failed to load config from file: %v, Err: %v", overrideFile, err)
		}
	} else {
		e.logger.Infof("Loaded config from file: %v", overrideFile)
	}

	for k, v := range initialEnv {
		if err := os.Setenv(k, v); err != nil {
			e.logger.Warnf("Failed to restore environment variable %v: %v", k, err)
		}
	}
}

func (*EnvLoader) Get(key string) string {
	return os.Getenv(key)
}

func (*EnvLoader) GetOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return defaultValue
}
