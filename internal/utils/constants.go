package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// ApplicationName is the binary and configuration namespace.
	ApplicationName = "dirscan"
	// ConfigFileName is the name of both the local and the global configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding the global configuration.
	GlobalConfigDirectoryName = "." + ApplicationName

	// LoggerInitializationFailedMessageFormat reports that the zap logger could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "dirscan failed"
)
