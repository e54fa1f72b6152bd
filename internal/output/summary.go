package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/dirscan/internal/types"
)

const (
	summaryLineFormat = "Summary: %d %s in %d %s, %s"

	fileLabelSingular      = "file"
	fileLabelPlural        = "files"
	directoryLabelSingular = "directory"
	directoryLabelPlural   = "directories"

	byteSizeStep       = 1024
	wholeBytesFormat   = "%d B"
	scaledSizeFormat   = "%s %s"
	scaledSizeDecimals = 1
	trailingZeroSuffix = ".0"
)

var scaledSizeUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB"}

// Summarize counts the files, directories and bytes collected in the tree.
// The root itself counts as a directory.
func Summarize(entry *types.DirectoryEntry) types.OutputSummary {
	files, directories, bytes := summarizeTree(entry)
	return types.OutputSummary{
		TotalFiles:       files,
		TotalDirectories: directories,
		TotalBytes:       bytes,
		TotalSize:        FormatByteSize(bytes),
	}
}

func summarizeTree(entry *types.DirectoryEntry) (int, int, int64) {
	if entry == nil {
		return 0, 0, 0
	}
	totalFiles := len(entry.Files)
	totalDirectories := 1
	var totalBytes int64
	for _, file := range entry.Files {
		totalBytes += file.SizeBytes
	}
	for _, subdirectory := range entry.Subdirectories {
		childFiles, childDirectories, childBytes := summarizeTree(subdirectory)
		totalFiles += childFiles
		totalDirectories += childDirectories
		totalBytes += childBytes
	}
	return totalFiles, totalDirectories, totalBytes
}

// FormatByteSize renders a byte count with binary units, e.g. "8 B", "1.5 KiB", "2 MiB".
// Scaled values keep one decimal unless it is zero.
func FormatByteSize(byteCount int64) string {
	if byteCount < byteSizeStep {
		return fmt.Sprintf(wholeBytesFormat, byteCount)
	}
	scaled := float64(byteCount)
	unitIndex := -1
	for scaled >= byteSizeStep && unitIndex < len(scaledSizeUnits)-1 {
		scaled /= byteSizeStep
		unitIndex++
	}
	value := strconv.FormatFloat(scaled, 'f', scaledSizeDecimals, 64)
	value = strings.TrimSuffix(value, trailingZeroSuffix)
	return fmt.Sprintf(scaledSizeFormat, value, scaledSizeUnits[unitIndex])
}

// FormatSummaryLine formats an OutputSummary into the raw summary line.
func FormatSummaryLine(summary types.OutputSummary) string {
	fileLabel := fileLabelPlural
	if summary.TotalFiles == 1 {
		fileLabel = fileLabelSingular
	}
	directoryLabel := directoryLabelPlural
	if summary.TotalDirectories == 1 {
		directoryLabel = directoryLabelSingular
	}
	totalSize := summary.TotalSize
	if totalSize == "" {
		totalSize = FormatByteSize(summary.TotalBytes)
	}
	return fmt.Sprintf(summaryLineFormat, summary.TotalFiles, fileLabel, summary.TotalDirectories, directoryLabel, totalSize)
}
