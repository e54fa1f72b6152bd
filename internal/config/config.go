// Package config loads YAML defaults and exclusion pattern files.
package config

import (
	"os"
	"strings"

	"github.com/spf13/afero"
)

const (
	commentPrefix = "#"
	lineSeparator = "\n"
)

// LoadIgnoreFilePatterns reads one .gitignore-style pattern per line from ignoreFilePath,
// skipping blank lines and comments. A missing file yields no patterns.
func LoadIgnoreFilePatterns(fileSystem afero.Fs, ignoreFilePath string) ([]string, error) {
	content, readError := afero.ReadFile(fileSystem, ignoreFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, readError
	}

	var ignorePatterns []string
	for _, line := range strings.Split(string(content), lineSeparator) {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	return ignorePatterns, nil
}
