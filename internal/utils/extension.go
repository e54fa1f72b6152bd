package utils

import (
	"path/filepath"
	"strings"
)

const extensionSeparator = "."

// FileExtension returns the extension of the final path element including the
// leading dot. Only the last segment counts, so "archive.tar.gz" yields ".gz".
// Names without a dot, and dotfiles such as ".bashrc" whose only dot is the
// first character, have an empty extension.
func FileExtension(name string) string {
	baseName := filepath.Base(name)
	separatorIndex := strings.LastIndex(baseName, extensionSeparator)
	if separatorIndex <= 0 {
		return EmptyString
	}
	return baseName[separatorIndex:]
}
