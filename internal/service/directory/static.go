package directory

import (
	"context"
	"maps"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// StaticProvider serves a fixed directory. The zero value is an empty
// directory, which makes every employee fall back to the locale placeholder.
type StaticProvider struct {
	dir attendance.EmployeeDirectory
}

func NewStaticProvider(dir attendance.EmployeeDirectory) *StaticProvider {
	return &StaticProvider{dir: maps.Clone(dir)}
}

// Directory returns a copy, so callers may not mutate the provider's map.
func (p *StaticProvider) Directory(ctx context.Context) (attendance.EmployeeDirectory, error) {
	if p.dir == nil {
		return attendance.EmployeeDirectory{}, nil
	}
	return maps.Clone(p.dir), nil
}
