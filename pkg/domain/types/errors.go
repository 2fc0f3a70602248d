package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")

	// ErrPrecondition indicates a mutating call was issued before its
	// required setup (e.g. organization ID not resolved). Misconfiguration,
	// never retried.
	ErrPrecondition = goerr.New("precondition violation")

	// ErrInvalidGitHubData indicates GitHub accepted a call but returned a
	// payload missing an expected field or carrying an unexpected status.
	ErrInvalidGitHubData = goerr.New("invalid data from GitHub")

	// ErrInventoryUnavailable indicates the repository roots or fallback
	// source could not be read. The sync loop retries the whole cycle after
	// a short delay.
	ErrInventoryUnavailable = goerr.New("repository inventory unavailable")

	ErrDirectoryUnavailable = goerr.New("directory service unavailable")
)
