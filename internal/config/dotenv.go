package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

const defaultDotEnvPath = ".env"

// loadDotEnv exports the variables of the .env file at path into the process
// environment. Variables that are already set are left untouched, so the real
// environment always wins over the file. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("error loading %s file: %w", path, err)
}
