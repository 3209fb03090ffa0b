package config

import (
	"os"
	"path/filepath"
)

// FileNames are the config file names looked up by Discover, in order.
var FileNames = []string{".ctrf.json", ".ctrf.yaml", ".ctrf.yml", ".ctrf.toml"}

// Discover returns the first config file found in dirs. Each directory is
// searched for every name in FileNames before moving to the next. Empty
// directory entries are skipped.
func Discover(dirs ...string) (string, bool) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}
