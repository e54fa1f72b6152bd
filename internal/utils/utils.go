// Package utils contains general helper functions used across the dirscan tool.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice. The last occurrence of
// each pattern keeps its position, since later exclusion patterns take precedence.
// Blank patterns are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	reversed := make([]string, 0, len(patterns))
	for index := len(patterns) - 1; index >= 0; index-- {
		trimmedPattern := strings.TrimSpace(patterns[index])
		if trimmedPattern == EmptyString {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			reversed = append(reversed, trimmedPattern)
		}
	}
	result := make([]string, len(reversed))
	for index, pattern := range reversed {
		result[len(reversed)-1-index] = pattern
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the slash-separated relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)

	if cleanPath == cleanRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
