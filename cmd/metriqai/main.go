package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitNoData  = 1 // Ingestion produced no benchmark entries
	ExitError   = 2 // Configuration or runtime error
)

// NoDataError indicates that ingestion ran successfully but produced no
// benchmark entries to aggregate.
type NoDataError struct {
	Message string
}

func (e *NoDataError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var noData *NoDataError
		if errors.As(err, &noData) {
			os.Exit(ExitNoData)
		}

		os.Exit(ExitError)
	}
}
