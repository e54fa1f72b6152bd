package output

import (
	"fmt"
	"io"

	"github.com/temirov/dirscan/internal/types"
)

const errorUnsupportedFormat = "unsupported output format %q"

// TreeRenderer writes a scanned tree in one output format.
type TreeRenderer interface {
	Render(tree *types.DirectoryEntry) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string, writer io.Writer, includeSummary bool) (TreeRenderer, error) {
	switch format {
	case types.FormatRaw:
		return NewRawRenderer(writer, includeSummary), nil
	case types.FormatJSON:
		return NewJSONRenderer(writer, includeSummary), nil
	case types.FormatXML:
		return NewXMLRenderer(writer, includeSummary), nil
	default:
		return nil, fmt.Errorf(errorUnsupportedFormat, format)
	}
}

type rawRenderer struct {
	writer         io.Writer
	includeSummary bool
}

// NewRawRenderer renders the indented text report, optionally followed by a summary line.
func NewRawRenderer(writer io.Writer, includeSummary bool) TreeRenderer {
	return &rawRenderer{writer: writer, includeSummary: includeSummary}
}

func (renderer *rawRenderer) Render(tree *types.DirectoryEntry) error {
	if tree == nil {
		return nil
	}
	if renderError := Render(renderer.writer, tree, 0); renderError != nil {
		return renderError
	}
	if !renderer.includeSummary {
		return nil
	}
	if _, writeError := fmt.Fprintln(renderer.writer); writeError != nil {
		return writeError
	}
	_, writeError := fmt.Fprintln(renderer.writer, FormatSummaryLine(Summarize(tree)))
	return writeError
}

type jsonRenderer struct {
	writer         io.Writer
	includeSummary bool
}

// NewJSONRenderer renders the tree as a JSON report.
func NewJSONRenderer(writer io.Writer, includeSummary bool) TreeRenderer {
	return &jsonRenderer{writer: writer, includeSummary: includeSummary}
}

func (renderer *jsonRenderer) Render(tree *types.DirectoryEntry) error {
	rendered, renderError := RenderJSON(tree, renderer.includeSummary)
	if renderError != nil {
		return renderError
	}
	_, writeError := fmt.Fprintln(renderer.writer, rendered)
	return writeError
}

type xmlRenderer struct {
	writer         io.Writer
	includeSummary bool
}

// NewXMLRenderer renders the tree as an XML report.
func NewXMLRenderer(writer io.Writer, includeSummary bool) TreeRenderer {
	return &xmlRenderer{writer: writer, includeSummary: includeSummary}
}

func (renderer *xmlRenderer) Render(tree *types.DirectoryEntry) error {
	rendered, renderError := RenderXML(tree, renderer.includeSummary)
	if renderError != nil {
		return renderError
	}
	_, writeError := fmt.Fprintln(renderer.writer, rendered)
	return writeError
}
