package config

const (
	// MaxTitleLength is the maximum length for document titles.
	MaxTitleLength = 255

	// MaxUploadBytes caps a single uploaded payload. Matches the 1 MiB
	// drop-zone limit enforced client-side so oversized files fail the same
	// way everywhere.
	MaxUploadBytes = 1 << 20

	// MaxBatchFiles caps how many files one batch ingestion accepts.
	MaxBatchFiles = 50

	// MaxRequestBytes caps any single request body.
	MaxRequestBytes = 10 << 20
)
