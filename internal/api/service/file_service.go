package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pipelinellm "github.com/davy1ex/pipelineLLM"
)

var ErrFileNotFound = errors.New("file not found")

// StoredFile is a text artifact produced by a file-writer node, kept in
// memory for the lifetime of the process. No cross-session persistence exists.
type StoredFile struct {
	ID        string
	Filename  string
	Content   []byte
	CreatedAt time.Time
}

type FileService struct {
	logger zerolog.Logger
	mu     sync.RWMutex
	files  map[string]StoredFile
}

func NewFileService() *FileService {
	return &FileService{
		logger: pipelinellm.Logger,
		files:  make(map[string]StoredFile),
	}
}

// Create stores a new file and returns its record. An empty filename gets a
// timestamped default, matching what the file-writer node displays.
func (slf *FileService) Create(filename string, content []byte) StoredFile {
	if filename == "" {
		filename = fmt.Sprintf("workflow-output-%s.txt", time.Now().Format("20060102-150405"))
	}
	file := StoredFile{
		ID:        uuid.NewString(),
		Filename:  filename,
		Content:   content,
		CreatedAt: time.Now(),
	}

	slf.mu.Lock()
	slf.files[file.ID] = file
	slf.mu.Unlock()

	slf.logger.Info().
		Str("fileId", file.ID).
		Str("filename", file.Filename).
		Int("size", len(file.Content)).
		Msg("File created")
	return file
}

// Get returns a stored file by id.
func (slf *FileService) Get(id string) (StoredFile, error) {
	slf.mu.RLock()
	defer slf.mu.RUnlock()

	file, ok := slf.files[id]
	if !ok {
		return StoredFile{}, ErrFileNotFound
	}
	return file, nil
}
