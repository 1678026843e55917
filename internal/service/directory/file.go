package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedDirectoryFile = errors.New("directory file must be .yaml, .yml or .toml")
	ErrInvalidDirectoryEntry    = errors.New("invalid directory entry")
)

// Entry is one employee in a directory file.
type Entry struct {
	ID   string `yaml:"id" toml:"id"`
	Name string `yaml:"name" toml:"name"`
}

// File is the on-disk directory layout:
//
//	employees:
//	  - id: "1001"
//	    name: Mona Hassan
type File struct {
	Employees []Entry `yaml:"employees" toml:"employees"`
}

// DecodeYAML reads a directory document in YAML.
func DecodeYAML(r io.Reader) (attendance.EmployeeDirectory, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return attendance.EmployeeDirectory{}, nil
		}
		return nil, fmt.Errorf("failed to decode yaml directory: %w", err)
	}
	return f.Directory()
}

// DecodeTOML reads a directory document in TOML ([[employees]] tables).
func DecodeTOML(r io.Reader) (attendance.EmployeeDirectory, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode toml directory: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to decode toml directory: unknown key %q", undecoded[0].String())
	}
	return f.Directory()
}

// Directory validates the entries and indexes them by ID. IDs and names are
// trimmed; blank or duplicate IDs are rejected rather than silently merged.
func (f File) Directory() (attendance.EmployeeDirectory, error) {
	dir := make(attendance.EmployeeDirectory, len(f.Employees))
	for i, e := range f.Employees {
		id := strings.TrimSpace(e.ID)
		name := strings.TrimSpace(e.Name)
		switch {
		case id == "":
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidDirectoryEntry, i+1)
		case name == "":
			return nil, fmt.Errorf("%w: employee %q has no name", ErrInvalidDirectoryEntry, id)
		}
		if _, dup := dir[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDirectoryEntry, id)
		}
		dir[id] = name
	}
	return dir, nil
}

// LoadFile decodes a directory file, choosing the format by extension.
func LoadFile(path string) (attendance.EmployeeDirectory, error) {
	var decode func(io.Reader) (attendance.EmployeeDirectory, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = DecodeYAML
	case ".toml":
		decode = DecodeTOML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDirectoryFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory file: %w", err)
	}
	defer f.Close()

	dir, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dir, nil
}

// FileRepository is a DirectoryRepository backed by a YAML or TOML file. The
// file is re-read on every call so edits are picked up by the next refresh.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) GetDirectory(ctx context.Context) (attendance.EmployeeDirectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(r.path)
}
