package main

// Exit codes
const (
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid subgraph.yml)
	ExitDataError   = 3 // Data error (input JSON malformed beyond repair)
)
