package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jacoelho/jv/internal/pathing"
	"github.com/zeebo/xxh3"
)

// InlineSource is reported as the source of documents loaded from text.
const InlineSource = "inline"

// Document is one parsed JSON value and its provenance. It is never modified
// after creation; a new load replaces it.
type Document struct {
	ID       uuid.UUID
	Root     *Value
	Path     string // empty for inline documents
	Checksum uint64 // xxh3 of the decoded text
	Size     int
	LoadedAt time.Time
}

// Source returns the file path the document was read from, or InlineSource.
func (d *Document) Source() string {
	if d.Path == "" {
		return InlineSource
	}
	return d.Path
}

// Store holds at most one document. Readers take a snapshot through Current
// and keep using it even if a concurrent load replaces it.
type Store struct {
	mu  sync.RWMutex
	doc *Document
	now func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// LoadFromText parses text and makes it the current document. Any previously
// held document is discarded first, so a failed load leaves nothing loaded.
func (s *Store) LoadFromText(text string) (*Document, error) {
	return s.load([]byte(text), "")
}

// LoadFromFile resolves rawPath, reads it (decompressing gzip or zstd
// content) and parses it.
func (s *Store) LoadFromFile(rawPath string) (*Document, error) {
	s.reset()

	path := pathing.Resolve(rawPath)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w %s: %v", ErrRead, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRead, path, err)
	}

	data, err := decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRead, path, err)
	}

	return s.load(data, path)
}

func (s *Store) load(data []byte, path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = nil

	root, err := Parse(data)
	if err != nil {
		return nil, err
	}

	s.doc = &Document{
		ID:       uuid.New(),
		Root:     root,
		Path:     path,
		Checksum: xxh3.Hash(data),
		Size:     len(data),
		LoadedAt: s.now(),
	}
	return s.doc, nil
}

func (s *Store) reset() {
	s.mu.Lock()
	s.doc = nil
	s.mu.Unlock()
}

func (s *Store) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc != nil
}

// Current returns the held document, if any.
func (s *Store) Current() (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.doc != nil
}

// DisplayStructure summarizes the current document down to maxDepth levels.
func (s *Store) DisplayStructure(maxDepth int) ([]Line, error) {
	doc, ok := s.Current()
	if !ok {
		return nil, ErrNotLoaded
	}
	return Structure(doc.Root, maxDepth), nil
}
