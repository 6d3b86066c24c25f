package main

// Process exit codes.
const (
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unusable paths)
	ExitDataError   = 3 // Data error (malformed input, validation failure)
)
