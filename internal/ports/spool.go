package ports

// Spool is one disposable on-disk staging directory. It exists for the
// duration of a single encoding run and is removed on Close regardless
// of whether the run succeeded.
type Spool interface {
	// Dir returns the staging directory path.
	Dir() string

	// Close removes the directory and everything in it.
	// Close is idempotent.
	Close() error
}

// Spooler creates staging directories for encoding runs.
type Spooler interface {
	Acquire() (Spool, error)
}
