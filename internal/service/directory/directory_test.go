package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDirectory = `
employees:
  - id: "1001"
    name: Mona Hassan
  - id: "0042"
    name: "  Ahmed Ali  "
`

const tomlDirectory = `
[[employees]]
id = "1001"
name = "Mona Hassan"

[[employees]]
id = "0042"
name = "Ahmed Ali"
`

func TestDecode(t *testing.T) {
	want := attendance.EmployeeDirectory{"1001": "Mona Hassan", "0042": "Ahmed Ali"}

	fromYAML, err := DecodeYAML(strings.NewReader(yamlDirectory))
	require.NoError(t, err)
	assert.Equal(t, want, fromYAML)

	fromTOML, err := DecodeTOML(strings.NewReader(tomlDirectory))
	require.NoError(t, err)
	assert.Equal(t, want, fromTOML)
}

func TestDecodeYAML_Empty(t *testing.T) {
	dir, err := DecodeYAML(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, dir)
}

func TestDecode_InvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", "employees:\n  - name: Mona\n"},
		{"missing name", "employees:\n  - id: \"1\"\n"},
		{"duplicate id", "employees:\n  - {id: \"1\", name: A}\n  - {id: \" 1 \", name: B}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidDirectoryEntry)
		})
	}
}

func TestDecode_UnknownKeys(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("staff:\n  - id: \"1\"\n"))
	assert.Error(t, err)

	_, err = DecodeTOML(strings.NewReader("[[staff]]\nid = \"1\"\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dirPath := t.TempDir()
	yamlPath := filepath.Join(dirPath, "employees.yml")
	tomlPath := filepath.Join(dirPath, "employees.toml")
	jsonPath := filepath.Join(dirPath, "employees.json")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDirectory), 0o644))
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlDirectory), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o644))

	dir, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, dir, 2)

	dir, err = NewFileRepository(tomlPath).GetDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Ali", dir["0042"])

	_, err = LoadFile(jsonPath)
	assert.ErrorIs(t, err, ErrUnsupportedDirectoryFile)

	_, err = LoadFile(filepath.Join(dirPath, "missing.yaml"))
	assert.Error(t, err)
}

func TestStaticProvider(t *testing.T) {
	src := attendance.EmployeeDirectory{"1": "Mona"}
	p := NewStaticProvider(src)
	src["2"] = "Late Addition"

	dir, err := p.Directory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, attendance.EmployeeDirectory{"1": "Mona"}, dir)

	dir["3"] = "Caller Mutation"
	again, _ := p.Directory(context.Background())
	assert.Len(t, again, 1)

	empty, err := (&StaticProvider{}).Directory(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

type fakeRepository struct {
	mu    sync.Mutex
	dirs  []attendance.EmployeeDirectory
	err   error
	calls int
}

func (f *fakeRepository) GetDirectory(ctx context.Context) (attendance.EmployeeDirectory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	d := f.dirs[0]
	if len(f.dirs) > 1 {
		f.dirs = f.dirs[1:]
	}
	return d, nil
}

func TestCachedProvider_LoadsOnceAndRefreshes(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := &fakeRepository{dirs: []attendance.EmployeeDirectory{
		{"1": "Mona"},
		{"1": "Mona Hassan", "2": "Ahmed"},
	}}
	p := NewCachedProvider(repo, "test")
	assert.True(t, p.LoadedAt().IsZero())

	// Act
	first, err := p.Directory(ctx)
	require.NoError(t, err)
	_, err = p.Directory(ctx)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "Mona", first["1"])
	assert.False(t, p.LoadedAt().IsZero())

	require.NoError(t, p.Refresh(ctx))
	second, err := p.Directory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mona Hassan", second["1"])

	// The earlier snapshot is untouched by the swap
	assert.Equal(t, attendance.EmployeeDirectory{"1": "Mona"}, first)
}

// Test that a failed refresh keeps serving the last good snapshot
func TestCachedProvider_RefreshFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepository{dirs: []attendance.EmployeeDirectory{{"1": "Mona"}}}
	p := NewCachedProvider(repo, "test")
	require.NoError(t, p.Refresh(ctx))

	repo.err = errors.New("connection refused")
	err := p.Refresh(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	dir, err := p.Directory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mona", dir["1"])
}

func TestCachedProvider_FirstLoadFailure(t *testing.T) {
	repo := &fakeRepository{err: errors.New("boom")}

	_, err := NewCachedProvider(repo, "test").Directory(context.Background())

	assert.Error(t, err)
}
