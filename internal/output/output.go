// Package output renders scanned directory trees.
package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/dirscan/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	directoryMarker       = "📁"
	fileMarker            = "📄"
	noMatchingFilesNotice = "⚠️ No files with the specified extension"

	directoryLineFormat = "%s%s %s\n"
	fileLineFormat      = "%s%s %s ~ %d bytes\n"
	noticeLineFormat    = "%s%s\n"
)

// Report is the structured document emitted by the JSON and XML renderers.
type Report struct {
	XMLName xml.Name              `json:"-" xml:"report"`
	Tree    *types.DirectoryEntry `json:"tree" xml:"directory"`
	Summary *types.OutputSummary  `json:"summary,omitempty" xml:"summary,omitempty"`
}

// Render writes entry and everything beneath it as indented text lines and
// stops at the first write error.
//
// Each directory produces its own line, then a notice when it holds no files,
// then one line per file in stored order, then its subdirectories at depth+1.
// Indentation is two spaces per depth level. The tree is not modified.
func Render(writer io.Writer, entry *types.DirectoryEntry, depth int) error {
	if entry == nil {
		return nil
	}
	indent := strings.Repeat(indentSpacer, depth)
	childIndent := indent + indentSpacer
	if _, writeError := fmt.Fprintf(writer, directoryLineFormat, indent, directoryMarker, entry.Name); writeError != nil {
		return writeError
	}
	if entry.IsEmpty() {
		if _, writeError := fmt.Fprintf(writer, noticeLineFormat, childIndent, noMatchingFilesNotice); writeError != nil {
			return writeError
		}
	}
	for _, file := range entry.Files {
		if _, writeError := fmt.Fprintf(writer, fileLineFormat, childIndent, fileMarker, file.Name, file.SizeBytes); writeError != nil {
			return writeError
		}
	}
	for _, subdirectory := range entry.Subdirectories {
		if renderError := Render(writer, subdirectory, depth+1); renderError != nil {
			return renderError
		}
	}
	return nil
}

// RenderJSON marshals the tree, with an optional summary, to indented JSON.
func RenderJSON(entry *types.DirectoryEntry, includeSummary bool) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(newReport(entry, includeSummary), indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}

// RenderXML marshals the tree, with an optional summary, to indented XML.
func RenderXML(entry *types.DirectoryEntry, includeSummary bool) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(newReport(entry, includeSummary), indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

func newReport(entry *types.DirectoryEntry, includeSummary bool) Report {
	report := Report{Tree: entry}
	if includeSummary {
		summary := Summarize(entry)
		report.Summary = &summary
	}
	return report
}
