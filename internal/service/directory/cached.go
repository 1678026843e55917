package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// CachedProvider serves directory snapshots loaded from a repository. A
// snapshot is never mutated after it is stored; Refresh swaps in a new map, so
// an analysis holding the old one keeps a consistent view.
type CachedProvider struct {
	repo attendance.DirectoryRepository
	name string

	mu        sync.RWMutex
	snapshot  attendance.EmployeeDirectory
	loadedAt  time.Time
	refreshMu sync.Mutex
}

// NewCachedProvider wraps repo; name identifies the source in logs.
func NewCachedProvider(repo attendance.DirectoryRepository, name string) *CachedProvider {
	return &CachedProvider{repo: repo, name: name}
}

// Directory returns the current snapshot, loading it on first use.
func (p *CachedProvider) Directory(ctx context.Context) (attendance.EmployeeDirectory, error) {
	p.mu.RLock()
	snap := p.snapshot
	p.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, nil
}

// Refresh reloads the directory. On failure the previous snapshot stays in
// service and the error is returned for the caller to log.
func (p *CachedProvider) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	dir, err := p.repo.GetDirectory(ctx)
	if err != nil {
		return fmt.Errorf("refresh %s directory: %w", p.name, err)
	}
	if dir == nil {
		dir = attendance.EmployeeDirectory{}
	}

	p.mu.Lock()
	p.snapshot = dir
	p.loadedAt = time.Now()
	p.mu.Unlock()

	slog.Info("Employee directory refreshed", "source", p.name, "employees", len(dir), "duration", time.Since(start))
	return nil
}

// LoadedAt reports when the current snapshot was loaded; zero before the first load.
func (p *CachedProvider) LoadedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedAt
}
