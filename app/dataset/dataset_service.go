package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/mahesh-hegde/instante/app/common"
)

var DefaultAllowedExtensions = []string{".csv", ".xlsx", ".xls", ".json"}

const DefaultMaxUploadBytes = 50 * 1024 * 1024

type UploadLimits struct {
	MaxBytes          int64
	AllowedExtensions []string
}

type UploadResult struct {
	ID      string
	Dataset *Dataset
	Profile *Profile
}

// DatasetService ingests uploads into the store and answers lookups.
type DatasetService struct {
	store  Store
	limits UploadLimits
}

func NewDatasetService(store Store, limits UploadLimits) *DatasetService {
	if limits.MaxBytes == 0 {
		limits.MaxBytes = DefaultMaxUploadBytes
	}
	if len(limits.AllowedExtensions) == 0 {
		limits.AllowedExtensions = DefaultAllowedExtensions
	}
	return &DatasetService{store: store, limits: limits}
}

func (s *DatasetService) Store() Store {
	return s.store
}

// Upload validates, parses and stores a file, returning the new dataset id
// together with its profile.
func (s *DatasetService) Upload(ctx context.Context, filename string, content []byte) (UploadResult, error) {
	if err := ValidateUpload(filename, int64(len(content)), s.limits.MaxBytes, s.limits.AllowedExtensions); err != nil {
		return UploadResult{}, err
	}

	ds, err := Parse(filename, content)
	if err != nil {
		slog.Error("error processing file", "filename", filename, "err", err)
		return UploadResult{}, common.WithCause(http.StatusBadRequest, fmt.Sprintf("Error processing file: %v", err), err)
	}

	id := uuid.NewString()
	if err := s.store.Put(ctx, id, ds); err != nil {
		slog.Error("failed to store dataset", "id", id, "err", err)
		return UploadResult{}, err
	}
	slog.Info("successfully processed file", "filename", filename, "id", id,
		"rows", ds.NumRows(), "columns", ds.NumColumns())

	return UploadResult{ID: id, Dataset: ds, Profile: Describe(ds)}, nil
}

func (s *DatasetService) Get(ctx context.Context, id string) (*Dataset, error) {
	ds, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, common.WithCause(http.StatusNotFound, "File not found", err)
	}
	return ds, err
}

func (s *DatasetService) Info(ctx context.Context, id string) (*Dataset, *Profile, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return ds, Describe(ds), nil
}

func (s *DatasetService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting dataset %s: %w", id, err)
	}
	slog.Info("deleted dataset", "id", id)
	return nil
}
