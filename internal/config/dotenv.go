package config

import "github.com/joho/godotenv"

// LoadDotEnv loads the first readable file from paths into the process environment.
// Variables already set are left untouched. It returns the file used, if any.
func LoadDotEnv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}
