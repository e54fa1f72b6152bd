package output_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/temirov/dirscan/internal/output"
	"github.com/temirov/dirscan/internal/types"
)

var errWriterClosed = errors.New("writer closed")

// limitedWriter accepts a fixed number of writes and fails every one after that.
type limitedWriter struct {
	remainingWrites int
	buffer          bytes.Buffer
	attempts        int
}

func (writer *limitedWriter) Write(data []byte) (int, error) {
	writer.attempts++
	if writer.remainingWrites <= 0 {
		return 0, errWriterClosed
	}
	writer.remainingWrites--
	return writer.buffer.Write(data)
}

// expectedRawTree is the raw rendering of sampleTree at depth 0.
const expectedRawTree = "📁 root\n" +
	"  ⚠️ No files with the specified extension\n" +
	"  📁 sub\n" +
	"    📄 c.md ~ 3 bytes\n" +
	"    📄 a.md ~ 1536 bytes\n" +
	"  📁 empty\n" +
	"    ⚠️ No files with the specified extension\n"

// sampleTree builds root/{sub/{c.md, a.md}, empty/} with the files in non-sorted order.
func sampleTree() *types.DirectoryEntry {
	root := types.NewDirectoryEntry("root", "/data/root")
	sub := root.AddSubdirectory("sub", "/data/root/sub")
	sub.AddFile(types.FileEntry{Name: "c.md", Path: "/data/root/sub/c.md", SizeBytes: 3})
	sub.AddFile(types.FileEntry{Name: "a.md", Path: "/data/root/sub/a.md", SizeBytes: 1536})
	root.AddSubdirectory("empty", "/data/root/empty")
	return root
}

func TestRenderWritesIndentedTree(testingInstance *testing.T) {
	var buffer bytes.Buffer
	if renderError := output.Render(&buffer, sampleTree(), 0); renderError != nil {
		testingInstance.Fatalf("Render error: %v", renderError)
	}
	if buffer.String() != expectedRawTree {
		testingInstance.Fatalf("unexpected raw output:\n%s\nexpected:\n%s", buffer.String(), expectedRawTree)
	}
}

func TestRenderIndentsFromGivenDepth(testingInstance *testing.T) {
	entry := types.NewDirectoryEntry("nested", "/nested")
	entry.AddFile(types.FileEntry{Name: "x.txt", SizeBytes: 0})
	var buffer bytes.Buffer
	if renderError := output.Render(&buffer, entry, 2); renderError != nil {
		testingInstance.Fatalf("Render error: %v", renderError)
	}
	expected := "    📁 nested\n      📄 x.txt ~ 0 bytes\n"
	if buffer.String() != expected {
		testingInstance.Fatalf("expected %q, got %q", expected, buffer.String())
	}
}

func TestRenderIsRepeatableAndNonMutating(testingInstance *testing.T) {
	tree := sampleTree()
	var first, second bytes.Buffer
	if renderError := output.Render(&first, tree, 0); renderError != nil {
		testingInstance.Fatalf("first Render error: %v", renderError)
	}
	if renderError := output.Render(&second, tree, 0); renderError != nil {
		testingInstance.Fatalf("second Render error: %v", renderError)
	}
	if first.String() != second.String() {
		testingInstance.Fatalf("renders differ:\n%s\n---\n%s", first.String(), second.String())
	}
	if tree.HasMatchingFiles || len(tree.Files) != 0 || len(tree.Subdirectories) != 2 {
		testingInstance.Fatalf("tree was mutated: %+v", tree)
	}
}

func TestRenderNilEntryWritesNothing(testingInstance *testing.T) {
	var buffer bytes.Buffer
	if renderError := output.Render(&buffer, nil, 0); renderError != nil {
		testingInstance.Fatalf("Render error: %v", renderError)
	}
	if buffer.Len() != 0 {
		testingInstance.Fatalf("expected no output, got %q", buffer.String())
	}
}

func TestSummarizeCountsWholeTree(testingInstance *testing.T) {
	summary := output.Summarize(sampleTree())
	if summary.TotalFiles != 2 || summary.TotalDirectories != 3 || summary.TotalBytes != 1539 {
		testingInstance.Fatalf("unexpected summary: %+v", summary)
	}
	line := output.FormatSummaryLine(summary)
	if line != "Summary: 2 files in 3 directories, 1.5 KiB" {
		testingInstance.Fatalf("unexpected summary line: %s", line)
	}
	single := output.FormatSummaryLine(types.OutputSummary{TotalFiles: 1, TotalDirectories: 1, TotalBytes: 10})
	if single != "Summary: 1 file in 1 directory, 10 B" {
		testingInstance.Fatalf("unexpected singular summary line: %s", single)
	}
}

func TestRenderStopsAtFirstWriteError(testingInstance *testing.T) {
	writer := &limitedWriter{remainingWrites: 2}
	renderError := output.Render(writer, sampleTree(), 0)
	if !errors.Is(renderError, errWriterClosed) {
		testingInstance.Fatalf("expected %v, got %v", errWriterClosed, renderError)
	}
	if writer.attempts != 3 {
		testingInstance.Fatalf("expected rendering to stop after the failed write, saw %d attempts", writer.attempts)
	}
	expectedPrefix := "📁 root\n  ⚠️ No files with the specified extension\n"
	if writer.buffer.String() != expectedPrefix {
		testingInstance.Fatalf("expected partial output %q, got %q", expectedPrefix, writer.buffer.String())
	}
}

func TestRenderersReportWriteErrors(testingInstance *testing.T) {
	testCases := []struct {
		name            string
		format          string
		includeSummary  bool
		remainingWrites int
	}{
		{name: "raw tree", format: types.FormatRaw},
		{name: "raw nested file", format: types.FormatRaw, remainingWrites: 3},
		{name: "raw summary separator", format: types.FormatRaw, includeSummary: true, remainingWrites: 7},
		{name: "raw summary line", format: types.FormatRaw, includeSummary: true, remainingWrites: 8},
		{name: "json", format: types.FormatJSON, includeSummary: true},
		{name: "xml", format: types.FormatXML},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(t *testing.T) {
			writer := &limitedWriter{remainingWrites: testCase.remainingWrites}
			renderer, rendererError := output.NewRenderer(testCase.format, writer, testCase.includeSummary)
			if rendererError != nil {
				t.Fatalf("NewRenderer error: %v", rendererError)
			}
			if renderError := renderer.Render(sampleTree()); !errors.Is(renderError, errWriterClosed) {
				t.Fatalf("expected %v, got %v", errWriterClosed, renderError)
			}
		})
	}
}

func TestFormatByteSize(testingInstance *testing.T) {
	testCases := []struct {
		byteCount int64
		expected  string
	}{
		{byteCount: 0, expected: "0 B"},
		{byteCount: 8, expected: "8 B"},
		{byteCount: 1023, expected: "1023 B"},
		{byteCount: 1024, expected: "1 KiB"},
		{byteCount: 1539, expected: "1.5 KiB"},
		{byteCount: 10 * 1024 * 1024, expected: "10 MiB"},
		{byteCount: 3 * 1024 * 1024 * 1024 / 2, expected: "1.5 GiB"},
	}
	for _, testCase := range testCases {
		if formatted := output.FormatByteSize(testCase.byteCount); formatted != testCase.expected {
			testingInstance.Errorf("FormatByteSize(%d) = %q, expected %q", testCase.byteCount, formatted, testCase.expected)
		}
	}
}

func TestRenderJSONKeepsStoredOrder(testingInstance *testing.T) {
	rendered, renderError := output.RenderJSON(sampleTree(), true)
	if renderError != nil {
		testingInstance.Fatalf("RenderJSON error: %v", renderError)
	}
	var decoded struct {
		Tree struct {
			Name             string `json:"name"`
			HasMatchingFiles bool   `json:"hasMatchingFiles"`
			Files            []struct {
				Name string `json:"name"`
			} `json:"files"`
			Subdirectories []struct {
				Name  string `json:"name"`
				Files []struct {
					Name      string `json:"name"`
					SizeBytes int64  `json:"sizeBytes"`
				} `json:"files"`
			} `json:"subdirectories"`
		} `json:"tree"`
		Summary *types.OutputSummary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(rendered), &decoded); err != nil {
		testingInstance.Fatalf("unmarshal: %v", err)
	}
	if decoded.Tree.Name != "root" || decoded.Tree.HasMatchingFiles || len(decoded.Tree.Files) != 0 {
		testingInstance.Fatalf("unexpected root: %+v", decoded.Tree)
	}
	if len(decoded.Tree.Subdirectories) != 2 || decoded.Tree.Subdirectories[0].Files[0].Name != "c.md" {
		testingInstance.Fatalf("unexpected subdirectories: %+v", decoded.Tree.Subdirectories)
	}
	if decoded.Summary == nil || decoded.Summary.TotalFiles != 2 {
		testingInstance.Fatalf("expected summary with 2 files, got %+v", decoded.Summary)
	}
	if !strings.Contains(rendered, "\"files\": []") {
		testingInstance.Fatalf("expected empty files array in %s", rendered)
	}
}

func TestRenderXMLProducesNestedDirectories(testingInstance *testing.T) {
	rendered, renderError := output.RenderXML(sampleTree(), false)
	if renderError != nil {
		testingInstance.Fatalf("RenderXML error: %v", renderError)
	}
	if !strings.HasPrefix(rendered, xml.Header) {
		testingInstance.Fatalf("expected XML header, got %s", rendered)
	}
	var decoded output.Report
	if err := xml.Unmarshal([]byte(strings.TrimPrefix(rendered, xml.Header)), &decoded); err != nil {
		testingInstance.Fatalf("unmarshal: %v", err)
	}
	if decoded.Tree == nil || decoded.Tree.Name != "root" || len(decoded.Tree.Subdirectories) != 2 {
		testingInstance.Fatalf("unexpected decoded tree: %+v", decoded.Tree)
	}
	sub := decoded.Tree.Subdirectories[0]
	if len(sub.Files) != 2 || sub.Files[1].Name != "a.md" || sub.Files[1].SizeBytes != 1536 {
		testingInstance.Fatalf("unexpected decoded files: %+v", sub.Files)
	}
	if decoded.Summary != nil {
		testingInstance.Fatalf("expected no summary")
	}
}

func TestNewRendererSelectsFormat(testingInstance *testing.T) {
	testCases := []struct {
		name             string
		format           string
		includeSummary   bool
		expectError      bool
		expectedFragment string
	}{
		{name: "raw", format: types.FormatRaw, expectedFragment: "📁 root\n"},
		{name: "raw with summary", format: types.FormatRaw, includeSummary: true, expectedFragment: "\nSummary: 2 files in 3 directories, 1.5 KiB\n"},
		{name: "json", format: types.FormatJSON, expectedFragment: "\"name\": \"root\""},
		{name: "xml", format: types.FormatXML, expectedFragment: "<directory name=\"root\""},
		{name: "unknown", format: "yaml", expectError: true},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(t *testing.T) {
			var buffer bytes.Buffer
			renderer, rendererError := output.NewRenderer(testCase.format, &buffer, testCase.includeSummary)
			if testCase.expectError {
				if rendererError == nil {
					t.Fatalf("expected error for format %s", testCase.format)
				}
				return
			}
			if rendererError != nil {
				t.Fatalf("NewRenderer error: %v", rendererError)
			}
			if err := renderer.Render(sampleTree()); err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if !strings.Contains(buffer.String(), testCase.expectedFragment) {
				t.Fatalf("expected fragment %q in output: %s", testCase.expectedFragment, buffer.String())
			}
		})
	}
}
