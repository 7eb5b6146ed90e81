package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no env file is named. It is optional.
const DefaultEnvFile = ".env"

// LoadDotEnv copies variables from env files into the process environment.
// Files are layered in order: a variable already set, by the process or by
// an earlier file, is kept. With no paths DefaultEnvFile is read if present;
// a path named explicitly must exist.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(DefaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		paths = []string{DefaultEnvFile}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig layers the env files, then reads the process environment.
func LoadConfig(envFiles ...string) (AppConfig, error) {
	if err := LoadDotEnv(envFiles...); err != nil {
		return AppConfig{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}

	return envCfg.ToAppConfig(), nil
}
