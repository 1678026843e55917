package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// ArchivePunchLog stores a raw punch log upload and returns its storage path
	ArchivePunchLog(ctx context.Context, filename string, uploadedAt time.Time, file io.Reader) (string, error)

	// GetFileURL returns a link to an archived file
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var punchLogContentTypes = map[string]string{
	".dat":  "text/plain",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ArchivePunchLog uploads a raw punch log under punch-logs/YYYY/MM/<uuid><ext>
func (s *fileServiceImpl) ArchivePunchLog(ctx context.Context, filename string, uploadedAt time.Time, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	contentType, ok := punchLogContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("invalid file type: only dat, txt, csv, xlsx allowed")
	}

	// Generate unique filename
	newFilename := uuid.New().String() + ext
	key := path.Join("punch-logs", uploadedAt.Format("2006"), uploadedAt.Format("01"), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload punch log: %w", err)
	}

	return uploadedPath, nil
}

// GetFileURL gets the URL for a file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
