package port

import "cslint/internal/domain"

// CachedReport is the stored result of analyzing one file.
type CachedReport struct {
	ModTime int64
	Report  *domain.Report
}

// ReportCache keeps per-file reports between runs, one namespace per mode.
type ReportCache interface {
	// Get returns nil when nothing is stored for path.
	Get(mode domain.Mode, path string) (*CachedReport, error)

	Put(mode domain.Mode, path string, entry CachedReport) error

	Delete(mode domain.Mode, path string) error

	Paths(mode domain.Mode) ([]string, error)

	Clear() error

	Close() error
}
