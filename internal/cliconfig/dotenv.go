package cliconfig

import "github.com/joho/godotenv"

// LoadDotenv loads environment variables from a dotenv file. Variables
// already present in the environment win. An explicitly given path must
// exist; the default ".env" in the working directory is optional.
func LoadDotenv(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if FileExists(".env") {
		return godotenv.Load()
	}
	return nil
}
