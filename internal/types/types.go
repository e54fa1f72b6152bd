// Package types defines every cross‑package data structure used by the dirscan CLI.
package types

import "encoding/xml"

const (
	CommandScan   = "scan"
	CommandPrompt = "prompt"
	CommandInit   = "init"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	// ExtensionAll disables extension filtering.
	ExtensionAll = "all"
)

// FileEntry is a file that passed the extension filter during a scan.
type FileEntry struct {
	XMLName   xml.Name `json:"-" xml:"file"`
	Name      string   `json:"name" xml:"name,attr"`
	Path      string   `json:"path" xml:"path,attr"`
	SizeBytes int64    `json:"sizeBytes" xml:"sizeBytes,attr"`
}

// DirectoryEntry is one scanned directory. It exclusively owns its files and
// subdirectories; both collections keep directory enumeration order.
type DirectoryEntry struct {
	XMLName          xml.Name          `json:"-" xml:"directory"`
	Name             string            `json:"name" xml:"name,attr"`
	Path             string            `json:"path" xml:"path,attr"`
	HasMatchingFiles bool              `json:"hasMatchingFiles" xml:"hasMatchingFiles,attr"`
	Files            []FileEntry       `json:"files" xml:"file"`
	Subdirectories   []*DirectoryEntry `json:"subdirectories" xml:"directory"`
}

// NewDirectoryEntry returns an entry with initialised, empty collections.
func NewDirectoryEntry(name string, path string) *DirectoryEntry {
	return &DirectoryEntry{
		Name:           name,
		Path:           path,
		Files:          []FileEntry{},
		Subdirectories: []*DirectoryEntry{},
	}
}

// AddFile appends a matching file and marks the directory as having matches.
func (entry *DirectoryEntry) AddFile(file FileEntry) {
	entry.Files = append(entry.Files, file)
	entry.HasMatchingFiles = true
}

// AddSubdirectory constructs a child entry, appends it and returns it so the
// caller can populate it afterwards.
func (entry *DirectoryEntry) AddSubdirectory(name string, path string) *DirectoryEntry {
	child := NewDirectoryEntry(name, path)
	entry.Subdirectories = append(entry.Subdirectories, child)
	return child
}

// IsEmpty reports whether no file was collected directly in this directory.
func (entry *DirectoryEntry) IsEmpty() bool {
	return len(entry.Files) == 0
}

// OutputSummary captures aggregate information about a scanned tree.
type OutputSummary struct {
	XMLName          xml.Name `json:"-" xml:"summary"`
	TotalFiles       int      `json:"totalFiles" xml:"totalFiles,attr"`
	TotalDirectories int      `json:"totalDirectories" xml:"totalDirectories,attr"`
	TotalBytes       int64    `json:"totalBytes" xml:"totalBytes,attr"`
	TotalSize        string   `json:"totalSize" xml:"totalSize,attr"`
}
