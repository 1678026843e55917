package attendance

import (
	"context"
)

// DirectoryRepository loads the employee directory from a backing store.
type DirectoryRepository interface {
	// GetDirectory returns every known punch-clock ID with its display name
	GetDirectory(ctx context.Context) (EmployeeDirectory, error)
}

// DirectoryProvider hands out directory snapshots to analysis runs.
type DirectoryProvider interface {
	Directory(ctx context.Context) (EmployeeDirectory, error)
}

// DirectoryRefresher reloads a cached directory from its backing store.
type DirectoryRefresher interface {
	Refresh(ctx context.Context) error
}
