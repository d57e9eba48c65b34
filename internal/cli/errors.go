package cli

import "errors"

var (
	// ErrNoBackend is returned when none of pkg, apt or pip is installed.
	ErrNoBackend = errors.New("no supported package manager found on PATH")

	// ErrNoPackages is returned when a backend lists no packages.
	ErrNoPackages = errors.New("no packages installed")

	// ErrNoSnapshot is returned when a snapshot cannot be found.
	ErrNoSnapshot = errors.New("snapshot not found")

	// ErrConfigExists is returned when config init would overwrite a file.
	ErrConfigExists = errors.New("config file already exists")

	// ErrAborted is returned when the user aborts an operation.
	ErrAborted = errors.New("operation aborted by user")
)
