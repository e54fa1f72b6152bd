// Package scanner walks a directory tree and builds the types.DirectoryEntry model.
//
// The walk is sequential and depth-first. Filesystem failures never escape a
// scan: each one is reported to the injected zap logger and aborts only the
// subtree (or the single entry) where it happened.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/output"
	"github.com/temirov/dirscan/internal/types"
	"github.com/temirov/dirscan/internal/utils"
)

const (
	// DiagnosticKindRootInvalid marks a path that does not exist, is not a directory, or cannot be stat'd.
	DiagnosticKindRootInvalid = "root_invalid"
	// DiagnosticKindSubtreeRead marks a nested directory that could not be validated or a directory whose contents could not be listed.
	DiagnosticKindSubtreeRead = "subtree_read_failure"
	// DiagnosticKindStat marks a directory entry that could not be stat'd.
	DiagnosticKindStat = "stat_failure"

	diagnosticKindField = "kind"
	diagnosticPathField = "path"

	excludeCommentPrefix = "#"
	relativePathSelf     = "."
	relativePathSplitter = "/"

	warningNotDirectoryMessage   = "path is not a directory"
	warningAccessPathMessage     = "error accessing directory"
	warningReadDirectoryMessage  = "error reading directory"
	warningStatEntryMessage      = "unable to stat entry"
	errorAbsolutePathFormat      = "getting absolute path for %s: %w"
	errorRootInvalidFormat       = "%w: %s"
	errorNotDirectoryFormat      = "%w: %s is not a directory"
	errorAccessDirectoryFormat   = "%w: %s: %v"
	errorReadDirectoryFormat     = "%w: %s: %v"
	errorStatEntryFormat         = "%w: %s: %v"
	readAllDirectoryNamesRequest = -1
)

var (
	// ErrRootInvalid is returned by Run when the root produced no tree.
	ErrRootInvalid = errors.New("invalid scan root")
	// ErrSubtreeRead wraps directory listing failures in diagnostics.
	ErrSubtreeRead = errors.New("subtree read failure")
	// ErrStat wraps per-entry stat failures in diagnostics.
	ErrStat = errors.New("stat failure")
)

// Options configures a Scanner.
type Options struct {
	// Fs is the filesystem to read. Defaults to the host filesystem.
	Fs afero.Fs
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// Root is the directory to scan.
	Root string
	// Depth is the depth assigned to the root, normally 0.
	Depth int
	// Extension is types.ExtensionAll, empty, or a dot-prefixed extension.
	Extension string
	// ExcludePatterns prune matching entries. They use .gitignore syntax and are
	// anchored at the scan root; later patterns win, so "!name" re-includes.
	ExcludePatterns []string
}

// Scanner builds a DirectoryEntry tree for one root and keeps the most recent result.
type Scanner struct {
	fileSystem     afero.Fs
	logger         *zap.Logger
	rootPath       string
	rootDepth      int
	extension      string
	excludeMatcher gitignore.Matcher

	walkRoot string
	lastTree *types.DirectoryEntry
}

// New constructs a Scanner from options.
func New(options Options) *Scanner {
	fileSystem := options.Fs
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		fileSystem:     fileSystem,
		logger:         logger,
		rootPath:       options.Root,
		rootDepth:      options.Depth,
		extension:      options.Extension,
		excludeMatcher: newExcludeMatcher(options.ExcludePatterns),
	}
}

// newExcludeMatcher compiles patterns in order, or returns nil when none remain.
func newExcludeMatcher(patterns []string) gitignore.Matcher {
	var compiled []gitignore.Pattern
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == utils.EmptyString || strings.HasPrefix(pattern, excludeCommentPrefix) {
			continue
		}
		compiled = append(compiled, gitignore.ParsePattern(pattern, nil))
	}
	if len(compiled) == 0 {
		return nil
	}
	return gitignore.NewMatcher(compiled)
}

// Tree returns the tree built by the most recent successful scan, or nil.
func (scanner *Scanner) Tree() *types.DirectoryEntry {
	return scanner.lastTree
}

// Render writes the most recently built tree as indented text, starting at the
// configured root depth. It writes nothing before a successful scan.
func (scanner *Scanner) Render(writer io.Writer) error {
	return output.Render(writer, scanner.lastTree, scanner.rootDepth)
}

// Run resolves the configured root and scans it. Subtree failures are only
// reported; the returned error is non-nil only when the root itself yields no tree.
func (scanner *Scanner) Run() (*types.DirectoryEntry, error) {
	absoluteRoot, absolutePathError := filepath.Abs(scanner.rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, scanner.rootPath, absolutePathError)
	}
	scanner.lastTree = nil
	tree := scanner.Scan(absoluteRoot, scanner.rootDepth, nil)
	if tree == nil {
		return nil, fmt.Errorf(errorRootInvalidFormat, ErrRootInvalid, absoluteRoot)
	}
	return tree, nil
}

// Validate reports whether path exists and is a directory. A false result is
// accompanied by a root_invalid diagnostic.
func (scanner *Scanner) Validate(path string) bool {
	return scanner.validate(path, DiagnosticKindRootInvalid, ErrRootInvalid)
}

func (scanner *Scanner) validate(path string, kind string, sentinel error) bool {
	pathInfo, statError := scanner.fileSystem.Stat(path)
	if statError != nil {
		scanner.report(kind, warningAccessPathMessage, path,
			fmt.Errorf(errorAccessDirectoryFormat, sentinel, path, statError))
		return false
	}
	if !pathInfo.IsDir() {
		scanner.report(kind, warningNotDirectoryMessage, path,
			fmt.Errorf(errorNotDirectoryFormat, sentinel, path))
		return false
	}
	return true
}

// Scan walks path and returns the working entry it populated, or nil when the
// walk of this subtree was aborted before it started.
//
// With a nil parent (or depth 0) a new root entry is created and remembered as
// the scanner's tree. Otherwise parent is the already appended child entry for
// path, so a subtree that fails midway still appears with what it collected.
func (scanner *Scanner) Scan(path string, depth int, parent *types.DirectoryEntry) *types.DirectoryEntry {
	isRoot := depth == 0 || parent == nil
	if isRoot && !scanner.Validate(path) {
		return nil
	}
	if !isRoot && !scanner.validate(path, DiagnosticKindSubtreeRead, ErrSubtreeRead) {
		return nil
	}

	entryNames, listError := scanner.listDirectory(path)
	if listError != nil {
		scanner.report(DiagnosticKindSubtreeRead, warningReadDirectoryMessage, path,
			fmt.Errorf(errorReadDirectoryFormat, ErrSubtreeRead, path, listError))
		return nil
	}

	workingEntry := parent
	if isRoot {
		workingEntry = types.NewDirectoryEntry(filepath.Base(path), path)
		scanner.walkRoot = path
		scanner.lastTree = workingEntry
	}

	for _, entryName := range entryNames {
		childPath := filepath.Join(path, entryName)
		childInfo, statError := scanner.fileSystem.Stat(childPath)
		if statError != nil {
			scanner.report(DiagnosticKindStat, warningStatEntryMessage, childPath,
				fmt.Errorf(errorStatEntryFormat, ErrStat, childPath, statError))
			// Only this entry is dropped; the remaining siblings are still listed.
			continue
		}
		if scanner.isExcluded(childPath, childInfo.IsDir()) {
			continue
		}

		if childInfo.IsDir() {
			childEntry := workingEntry.AddSubdirectory(entryName, childPath)
			scanner.Scan(childPath, depth+1, childEntry)
			continue
		}

		if !scanner.matchesFilter(entryName) {
			continue
		}
		workingEntry.AddFile(types.FileEntry{
			Name:      entryName,
			Path:      childPath,
			SizeBytes: childInfo.Size(),
		})
	}

	return workingEntry
}

// listDirectory returns entry names in the order the filesystem enumerates them.
func (scanner *Scanner) listDirectory(path string) ([]string, error) {
	directoryHandle, openError := scanner.fileSystem.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()
	return directoryHandle.Readdirnames(readAllDirectoryNamesRequest)
}

func (scanner *Scanner) matchesFilter(entryName string) bool {
	if scanner.extension == utils.EmptyString || scanner.extension == types.ExtensionAll {
		return true
	}
	return utils.FileExtension(entryName) == scanner.extension
}

func (scanner *Scanner) isExcluded(childPath string, isDirectory bool) bool {
	if scanner.excludeMatcher == nil {
		return false
	}
	relativePath := utils.RelativePathOrSelf(childPath, scanner.walkRoot)
	if relativePath == relativePathSelf {
		return false
	}
	return scanner.excludeMatcher.Match(strings.Split(relativePath, relativePathSplitter), isDirectory)
}

func (scanner *Scanner) report(kind string, message string, path string, cause error) {
	scanner.logger.Warn(message,
		zap.String(diagnosticKindField, kind),
		zap.String(diagnosticPathField, path),
		zap.Error(cause),
	)
}
