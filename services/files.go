package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"dinein-dashboard/models"

	"github.com/sirupsen/logrus"
)

const csvExt = ".csv"

// FileService saves uploaded exports under a dated name and loads them back
// as datasets.
type FileService struct {
	store    BlobStore
	baseURL  string
	maxBytes int64
	log      *logrus.Logger
	now      func() time.Time
}

func NewFileService(store BlobStore, baseURL string, maxUploadMB int64, log *logrus.Logger) *FileService {
	return &FileService{
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxUploadMB << 20,
		log:      log,
		now:      time.Now,
	}
}

// StoredName prefixes the base name of an upload with its UTC upload day.
func StoredName(now time.Time, name string) string {
	return now.UTC().Format("2006-01-02") + "_" + path.Base(strings.ReplaceAll(name, "\\", "/"))
}

// IsCSV reports whether name has a .csv extension, in any case.
func IsCSV(name string) bool {
	return strings.EqualFold(path.Ext(name), csvExt)
}

// URL is where clients download a stored file.
func (s *FileService) URL(filename string) string {
	return s.baseURL + "/api/files/" + url.PathEscape(filename)
}

// Upload validates and stores one export. The stored name always ends in
// lowercase .csv so it shows up in List.
func (s *FileService) Upload(ctx context.Context, name string, content []byte) (models.StoredFile, error) {
	if !IsCSV(name) {
		return models.StoredFile{}, ErrNotCSV
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return models.StoredFile{}, ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(content)) > s.maxBytes {
		return models.StoredFile{}, ErrTooLarge
	}
	name = strings.TrimSuffix(name, path.Ext(name)) + csvExt
	stored := StoredName(s.now(), name)

	b, err := s.store.Put(ctx, stored, content)
	if err != nil {
		s.log.WithError(err).WithField("file", stored).Error("upload failed")
		return models.StoredFile{}, err
	}
	s.log.WithFields(logrus.Fields{"file": stored, "size": b.Size}).Info("file uploaded")
	return s.toFile(b), nil
}

// List returns stored .csv files, newest first. A store failure is logged
// and yields an empty list.
func (s *FileService) List(ctx context.Context) []models.StoredFile {
	blobs, err := s.store.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("list files failed")
		return []models.StoredFile{}
	}
	out := make([]models.StoredFile, 0, len(blobs))
	for _, b := range blobs {
		if strings.HasSuffix(b.Filename, csvExt) {
			out = append(out, s.toFile(b))
		}
	}
	return out
}

// Content returns the raw bytes of a stored file.
func (s *FileService) Content(ctx context.Context, filename string) ([]byte, error) {
	return s.store.Get(ctx, filename)
}

// Open loads and decodes a stored file.
func (s *FileService) Open(ctx context.Context, filename string) (*models.Dataset, error) {
	content, err := s.store.Get(ctx, filename)
	if err != nil {
		return nil, err
	}
	ds, err := DecodeCSV(filename, bytes.NewReader(content))
	if err != nil {
		s.log.WithError(err).WithField("file", filename).Warn("decode failed")
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	s.log.WithFields(logrus.Fields{"file": filename, "rows": len(ds.Rows)}).Debug("file loaded")
	return ds, nil
}

func (s *FileService) toFile(b Blob) models.StoredFile {
	return models.StoredFile{
		Filename:   b.Filename,
		URL:        s.URL(b.Filename),
		Size:       b.Size,
		UploadedAt: b.UploadedAt,
	}
}
