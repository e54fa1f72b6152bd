// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/config"
	"github.com/temirov/dirscan/internal/output"
	"github.com/temirov/dirscan/internal/prompt"
	"github.com/temirov/dirscan/internal/scanner"
	"github.com/temirov/dirscan/internal/services/clipboard"
	"github.com/temirov/dirscan/internal/types"
	"github.com/temirov/dirscan/internal/utils"
)

const (
	extensionFlagName    = "ext"
	extensionShorthand   = "x"
	exclusionFlagName    = "e"
	ignoreFileFlagName   = "ignore-file"
	formatFlagName       = "format"
	summaryFlagName      = "summary"
	copyFlagName         = "copy"
	configFlagName       = "config"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "dirscan version: %s\n"
	defaultPath          = "."
	rootUse              = "dirscan"
	rootShortDescription = "dirscan lists files by extension across a directory tree"
	rootLongDescription  = `dirscan walks a directory recursively and reports every file whose extension
matches a filter, grouped by directory, with each file's size in bytes.
Directories without matching files are flagged. Use --format to select raw, json, or xml output,
--config to point at a configuration file, and --version to print the application version.`
	versionFlagDescription = "display application version"
	configFlagDescription  = "path to a configuration file (defaults to ./config.yaml)"

	scanUse              = types.CommandScan + " [path]"
	scanAlias            = "s"
	scanShortDescription = "scan a directory tree (" + scanAlias + ")"
	scanLongDescription  = `Walk a directory and list the files matching --ext.
Use "all" to list every file. Subtrees that cannot be read are reported and skipped.`
	scanUsageExample = `  # List markdown files under docs
  dirscan scan --ext .md ./docs

  # Emit JSON with a summary, skipping node_modules
  dirscan scan --format json --summary -e node_modules/ .`

	promptUse              = types.CommandPrompt
	promptAlias            = "p"
	promptShortDescription = "choose the directory and extension interactively (" + promptAlias + ")"
	promptLongDescription  = `Ask for the directory to scan and the extension to filter by, then scan it.
Output flags behave as in the scan command.`

	initUse              = types.CommandInit
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write a configuration file with the built-in defaults.
Use --global to write ~/.dirscan/config.yaml instead of ./config.yaml.`

	extensionFlagDescription  = `extension to list, e.g. ".md", or "all"`
	exclusionFlagDescription  = "exclude path pattern (repeatable)"
	ignoreFileFlagDescription = "file with one exclusion pattern per line"
	formatFlagDescription     = "output format: raw, json or xml"
	summaryFlagDescription    = "include a summary of the listed files"
	copyFlagDescription       = "copy the report to the system clipboard"
	globalFlagDescription     = "write the global configuration file"
	forceFlagDescription      = "overwrite an existing configuration file"

	invalidFormatMessage        = "invalid format value '%s'"
	invalidExtensionMessage     = "invalid extension value '%s': use \"all\" or a value starting with \".\""
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorLoadConfiguration      = "load configuration: %w"
	errorLoadIgnoreFile         = "load ignore file %s: %w"
	errorCopyToClipboard        = "copy report to clipboard: %w"
	initWrittenTemplate         = "Configuration written to %s\n"
	promptCancelledMessage      = "prompt cancelled"
)

// Dependencies are the collaborators used by the command tree.
type Dependencies struct {
	Logger           *zap.Logger
	FileSystem       afero.Fs
	Clipboard        clipboard.Copier
	Prompt           func(input io.Reader, output io.Writer) (prompt.Answers, error)
	WorkingDirectory string
	HomeDirectory    string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = afero.NewOsFs()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Prompt == nil {
		dependencies.Prompt = prompt.Run
	}
	return dependencies
}

// Execute runs the dirscan application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(normalizeToggleArguments(os.Args[1:]))
	return rootCommand.Execute()
}

var supportedFormats = []string{types.FormatRaw, types.FormatJSON, types.FormatXML}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	return utils.ContainsString(supportedFormats, format)
}

// isSupportedExtension reports whether the extension filter is well formed.
func isSupportedExtension(extension string) bool {
	return extension == types.ExtensionAll || strings.HasPrefix(extension, ".")
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return command.Help()
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createScanCommand(dependencies, &configurationPath),
		createPromptCommand(dependencies, &configurationPath),
		createInitCommand(dependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// scanFlags stores the values of the flags shared by scan and prompt.
type scanFlags struct {
	extension         string
	format            string
	summary           bool
	copyToClipboard   bool
	exclusionPatterns []string
	ignoreFile        string
}

// scanSettings is the merged result of flags, configuration and defaults.
type scanSettings struct {
	rootPath        string
	extension       string
	format          string
	summary         bool
	copyToClipboard bool
	excludePatterns []string
}

// addOutputFlags registers the flags shared by the scan and prompt commands.
func addOutputFlags(command *cobra.Command, flags *scanFlags) {
	command.Flags().StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerToggleFlag(command.Flags(), &flags.summary, summaryFlagName, summaryFlagDescription)
	registerToggleFlag(command.Flags(), &flags.copyToClipboard, copyFlagName, copyFlagDescription)
	command.Flags().StringArrayVarP(&flags.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().StringVar(&flags.ignoreFile, ignoreFileFlagName, "", ignoreFileFlagDescription)
}

// createScanCommand returns the scan subcommand.
func createScanCommand(dependencies Dependencies, configurationPath *string) *cobra.Command {
	var flags scanFlags

	scanCommand := &cobra.Command{
		Use:     scanUse,
		Aliases: []string{scanAlias},
		Short:   scanShortDescription,
		Long:    scanLongDescription,
		Example: scanUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}
			settings, settingsError := resolveScanSettings(command, dependencies, *configurationPath, flags, rootPath, "")
			if settingsError != nil {
				return settingsError
			}
			return runScan(command, dependencies, settings)
		},
	}
	scanCommand.Flags().StringVarP(&flags.extension, extensionFlagName, extensionShorthand, types.ExtensionAll, extensionFlagDescription)
	addOutputFlags(scanCommand, &flags)
	return scanCommand
}

// createPromptCommand returns the interactive prompt subcommand.
func createPromptCommand(dependencies Dependencies, configurationPath *string) *cobra.Command {
	var flags scanFlags

	promptCommand := &cobra.Command{
		Use:     promptUse,
		Aliases: []string{promptAlias},
		Short:   promptShortDescription,
		Long:    promptLongDescription,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			answers, promptError := dependencies.Prompt(command.InOrStdin(), command.ErrOrStderr())
			if errors.Is(promptError, prompt.ErrAborted) {
				dependencies.Logger.Info(promptCancelledMessage)
				return nil
			}
			if promptError != nil {
				return promptError
			}
			settings, settingsError := resolveScanSettings(command, dependencies, *configurationPath, flags, answers.DirectoryPath, answers.Extension)
			if settingsError != nil {
				return settingsError
			}
			return runScan(command, dependencies, settings)
		},
	}
	addOutputFlags(promptCommand, &flags)
	return promptCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initWrittenTemplate, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveScanSettings merges flag values over configuration over built-in defaults.
// A non-empty extensionOverride replaces both the flag and the configuration.
func resolveScanSettings(command *cobra.Command, dependencies Dependencies, configurationPath string, flags scanFlags, rootPath string, extensionOverride string) (scanSettings, error) {
	workingDirectory, workingDirectoryError := resolveWorkingDirectory(dependencies.WorkingDirectory)
	if workingDirectoryError != nil {
		return scanSettings{}, workingDirectoryError
	}
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationPath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if configurationError != nil {
		return scanSettings{}, fmt.Errorf(errorLoadConfiguration, configurationError)
	}
	scanConfiguration := applicationConfiguration.Scan
	flagSet := command.Flags()

	settings := scanSettings{
		extension:       flags.extension,
		format:          flags.format,
		summary:         flags.summary,
		copyToClipboard: flags.copyToClipboard,
	}
	if !flagSet.Changed(extensionFlagName) && scanConfiguration.Extension != "" {
		settings.extension = scanConfiguration.Extension
	}
	if extensionOverride != "" {
		settings.extension = extensionOverride
	}
	if settings.extension == "" {
		settings.extension = types.ExtensionAll
	}
	if !flagSet.Changed(formatFlagName) && scanConfiguration.Format != "" {
		settings.format = scanConfiguration.Format
	}
	settings.format = strings.ToLower(strings.TrimSpace(settings.format))
	if !flagSet.Changed(summaryFlagName) && scanConfiguration.Summary != nil {
		settings.summary = *scanConfiguration.Summary
	}
	if !flagSet.Changed(copyFlagName) && scanConfiguration.Clipboard != nil {
		settings.copyToClipboard = *scanConfiguration.Clipboard
	}

	if !isSupportedFormat(settings.format) {
		return scanSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}
	if !isSupportedExtension(settings.extension) {
		return scanSettings{}, fmt.Errorf(invalidExtensionMessage, settings.extension)
	}

	ignoreFile := flags.ignoreFile
	if ignoreFile == "" {
		ignoreFile = scanConfiguration.Paths.IgnoreFile
	}
	excludePatterns := append([]string{}, scanConfiguration.Paths.Exclude...)
	excludePatterns = append(excludePatterns, flags.exclusionPatterns...)
	if ignoreFile != "" {
		ignoreFilePath := resolveAgainst(workingDirectory, ignoreFile)
		ignorePatterns, ignoreError := config.LoadIgnoreFilePatterns(dependencies.FileSystem, ignoreFilePath)
		if ignoreError != nil {
			return scanSettings{}, fmt.Errorf(errorLoadIgnoreFile, ignoreFilePath, ignoreError)
		}
		excludePatterns = append(excludePatterns, ignorePatterns...)
	}
	settings.excludePatterns = utils.DeduplicatePatterns(excludePatterns)

	absoluteRoot, absolutePathError := filepath.Abs(resolveAgainst(workingDirectory, rootPath))
	if absolutePathError != nil {
		return scanSettings{}, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	settings.rootPath = absoluteRoot
	return settings, nil
}

// runScan walks the configured root and renders the tree to the command output.
func runScan(command *cobra.Command, dependencies Dependencies, settings scanSettings) error {
	treeScanner := scanner.New(scanner.Options{
		Fs:              dependencies.FileSystem,
		Logger:          dependencies.Logger,
		Root:            settings.rootPath,
		Extension:       settings.extension,
		ExcludePatterns: settings.excludePatterns,
	})
	tree, scanError := treeScanner.Run()
	if scanError != nil {
		return scanError
	}

	var reportBuffer bytes.Buffer
	destination := command.OutOrStdout()
	if settings.copyToClipboard {
		destination = io.MultiWriter(destination, &reportBuffer)
	}
	renderer, rendererError := output.NewRenderer(settings.format, destination, settings.summary)
	if rendererError != nil {
		return rendererError
	}
	if renderError := renderer.Render(tree); renderError != nil {
		return renderError
	}
	if settings.copyToClipboard {
		if copyError := dependencies.Clipboard.Copy(reportBuffer.String()); copyError != nil {
			return fmt.Errorf(errorCopyToClipboard, copyError)
		}
	}
	return nil
}

func resolveWorkingDirectory(workingDirectory string) (string, error) {
	if workingDirectory != "" {
		return workingDirectory, nil
	}
	currentDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return currentDirectory, nil
}

func resolveAgainst(workingDirectory string, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDirectory, path)
}
