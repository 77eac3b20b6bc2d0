package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FindEnvFile walks up from the working directory until it finds name.
func FindEnvFile(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find %s file", name)
		}
		dir = parent
	}
}

// LoadEnvFile loads the nearest file called name into the environment.
// Variables already set in the environment win.
func LoadEnvFile(name string) error {
	path, err := FindEnvFile(name)
	if err != nil {
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

func warnf(format string, args ...interface{}) {
	log.Printf("Warning: "+format, args...)
}
