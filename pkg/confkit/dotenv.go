package confkit

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads a .env file the first time it is called.
//
// ENV_FILE names an explicit file. Otherwise .env files are loaded from the
// working directory up to the project root, nearest first, so values closer
// to the caller win. Variables already present in the process environment
// are kept unless DOTENV_OVERLOAD=1. NO_DOTENV=1 disables loading.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = load(envFile)
		return
	}
	for _, dir := range searchDirs() {
		if path := dir + string(os.PathSeparator) + ".env"; fileExists(path) {
			_ = load(path)
		}
	}
}
