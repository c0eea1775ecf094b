package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Configuration error (unsupported file extension, bad config file)
	ExitDataError   = 3 // Data error (validation failure, duplicate id, column conflict)
)
