package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"dinein-dashboard/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound  = errors.New("file not found")
	ErrEmptyFile = errors.New("file is empty")
	ErrNotCSV    = errors.New("only .csv files are accepted")
	ErrTooLarge  = errors.New("file exceeds upload limit")
)

// Blob is the metadata of one stored file.
type Blob struct {
	ID         uuid.UUID
	Filename   string
	Size       int64
	UploadedAt time.Time
}

// BlobStore keeps uploaded exports by filename. Putting an existing name
// replaces its content.
type BlobStore interface {
	Put(ctx context.Context, filename string, content []byte) (Blob, error)
	List(ctx context.Context) ([]Blob, error)
	Get(ctx context.Context, filename string) ([]byte, error)
}

// PostgresBlobStore stores files in the csv_files table through db.Pool.
type PostgresBlobStore struct{}

func (PostgresBlobStore) Put(ctx context.Context, filename string, content []byte) (Blob, error) {
	b := Blob{Filename: filename, Size: int64(len(content))}
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO csv_files (id, filename, content, size_bytes, uploaded_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (filename) DO UPDATE SET
			content = EXCLUDED.content,
			size_bytes = EXCLUDED.size_bytes,
			uploaded_at = now()
		RETURNING id::text, uploaded_at`,
		uuid.NewString(), filename, content, b.Size,
	).Scan(&id, &b.UploadedAt)
	if err != nil {
		return Blob{}, fmt.Errorf("store %s: %w", filename, err)
	}
	if b.ID, err = uuid.Parse(id); err != nil {
		return Blob{}, fmt.Errorf("store %s: bad id %q: %w", filename, id, err)
	}
	return b, nil
}

func (PostgresBlobStore) List(ctx context.Context) ([]Blob, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id::text, filename, size_bytes, uploaded_at FROM csv_files
		ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Blob
	for rows.Next() {
		var id string
		var b Blob
		if err := rows.Scan(&id, &b.Filename, &b.Size, &b.UploadedAt); err != nil {
			return nil, err
		}
		if b.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (PostgresBlobStore) Get(ctx context.Context, filename string) ([]byte, error) {
	var content []byte
	err := db.Pool.QueryRow(ctx, `SELECT content FROM csv_files WHERE filename = $1`, filename).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return content, nil
}

// MemoryBlobStore is a process-local BlobStore for tests and for running
// without a database.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]memBlob
	now   func() time.Time
}

type memBlob struct {
	Blob
	content []byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string]memBlob), now: time.Now}
}

func (s *MemoryBlobStore) Put(ctx context.Context, filename string, content []byte) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := Blob{ID: uuid.New(), Filename: filename, Size: int64(len(content)), UploadedAt: s.now().UTC()}
	if old, ok := s.blobs[filename]; ok {
		b.ID = old.ID
	}
	s.blobs[filename] = memBlob{Blob: b, content: append([]byte(nil), content...)}
	return b, nil
}

func (s *MemoryBlobStore) List(ctx context.Context) ([]Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Blob, 0, len(s.blobs))
	for _, b := range s.blobs {
		out = append(out, b.Blob)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (s *MemoryBlobStore) Get(ctx context.Context, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[filename]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b.content...), nil
}
