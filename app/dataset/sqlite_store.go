package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

// SQLiteStore persists datasets as zstd-compressed gob blobs, one row per
// dataset.
type SQLiteStore struct {
	db      *sql.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ Store = &SQLiteStore{}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &SQLiteStore{db: db, encoder: encoder, decoder: decoder}, nil
}

func (s *SQLiteStore) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS instante_datasets (
			id TEXT PRIMARY KEY,
			name TEXT,
			n_rows INTEGER,
			n_columns INTEGER,
			created_at TEXT,
			d BLOB
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create instante_datasets table: %w", err)
	}
	return nil
}

// storedColumn is the gob form of Column; Column keeps its fields private so
// that datasets stay immutable after construction.
type storedColumn struct {
	Name  string
	Kind  Kind
	Nums  []float64
	Strs  []string
	Times []time.Time
	Valid []bool
}

type storedDataset struct {
	Name    string
	Columns []storedColumn
}

func encodeDataset(ds *Dataset) ([]byte, error) {
	sd := storedDataset{Name: ds.name, Columns: make([]storedColumn, len(ds.columns))}
	for i, c := range ds.columns {
		sd.Columns[i] = storedColumn{
			Name:  c.name,
			Kind:  c.kind,
			Nums:  c.nums,
			Strs:  c.strs,
			Times: c.times,
			Valid: c.valid,
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sd); err != nil {
		return nil, fmt.Errorf("failed to gob encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeDataset(data []byte) (*Dataset, error) {
	var sd storedDataset
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&sd); err != nil {
		return nil, fmt.Errorf("failed to gob decode dataset: %w", err)
	}
	b := NewBuilder(sd.Name)
	for _, sc := range sd.Columns {
		b.add(&Column{
			name:  sc.Name,
			kind:  sc.Kind,
			nums:  sc.Nums,
			strs:  sc.Strs,
			times: sc.Times,
			valid: sc.Valid,
		})
	}
	return b.Build()
}

func (s *SQLiteStore) Put(ctx context.Context, id string, ds *Dataset) error {
	raw, err := encodeDataset(ds)
	if err != nil {
		return err
	}
	blob := s.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2))
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO instante_datasets (id, name, n_rows, n_columns, created_at, d) VALUES (?, ?, ?, ?, ?, ?)`,
		id, ds.Name(), ds.NumRows(), ds.NumColumns(), time.Now().UTC().Format(time.RFC3339), blob)
	if err != nil {
		return fmt.Errorf("failed to insert dataset %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Dataset, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT d FROM instante_datasets WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset %s: %w", id, err)
	}
	raw, err := s.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress dataset %s: %w", id, err)
	}
	return decodeDataset(raw)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM instante_datasets WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}
