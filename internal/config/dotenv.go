package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is loaded into the process environment before configuration
// is read, when present.
const DotEnvFile = ".env"

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
