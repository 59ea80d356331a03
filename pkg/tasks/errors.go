package tasks

import "errors"

var (
	// ErrRepositoryUnavailable means a remote repository could not be listed,
	// either because it does not exist or the hub could not be reached.
	ErrRepositoryUnavailable = errors.New("repository unavailable")

	// ErrDownloadFailed means a transfer did not complete successfully.
	ErrDownloadFailed = errors.New("download failed")

	// ErrNoQualifyingFile means the weights-file selection heuristic found no
	// candidate when one was required.
	ErrNoQualifyingFile = errors.New("no qualifying file")

	// ErrLocalFileMissing means a csv/json dataset path was expected to be
	// staged locally but is absent.
	ErrLocalFileMissing = errors.New("local dataset file missing")
)
