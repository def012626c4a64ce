package errors

import "fmt"

// Common error messages for the verlog CLI.
// These templates ensure consistent, actionable error messages.

// InvalidConfig creates an error for a configuration that failed to load or validate.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .verlog/config.yml (or the file passed with --config)",
		"Print a commented template with: verlog config template",
		"Environment overrides use the VERLOG_ prefix, e.g. VERLOG_MAX_PARALLEL=4",
	)
}

// SourceUnavailable creates an error for a data source that cannot be opened.
func SourceUnavailable(source string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot use source %q", source),
		"Pass an http(s) base URL or an existing directory with --source",
		"The directory must contain versions-index.json and a versions/ folder",
	)
}

// PageUnavailable creates an error for a host page that cannot be read.
func PageUnavailable(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot load host page %q", path),
		"Check that the file exists and is readable",
		"Omit --page to use the built-in page",
	)
}

// WatchNeedsDirectory creates an error for --watch used with a remote source.
func WatchNeedsDirectory(source string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("--watch needs a local directory source, got %q", source),
		"verlog render --source ./public --out ./public/changelog.html --watch",
		"Point --source at the directory holding versions-index.json",
	)
}

// InvalidFormat creates an error for an unknown output format.
func InvalidFormat(format string, valid ...string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown output format %q", format),
		fmt.Sprintf("Valid formats: %v", valid),
	)
}

// OutputFailed creates an error when the rendered page cannot be written.
func OutputFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("writing %s", path),
		"Check that the output directory exists and is writable",
	)
}
