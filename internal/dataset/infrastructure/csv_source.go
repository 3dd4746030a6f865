package infrastructure

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"bikestore/internal/dataset/domain"
)

// CSVSource lit les tables depuis un répertoire de fichiers <table>.csv
type CSVSource struct {
	dir string
}

// NewCSVSource crée une source CSV sur un répertoire
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Fetch lit <dir>/<table>.csv
func (s *CSVSource) Fetch(ctx context.Context, table string) (*domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.LoadError{Table: table, Err: fmt.Errorf("%w: %s", domain.ErrMissingTable, path)}
		}
		return nil, err
	}
	defer f.Close()

	return ReadCSV(table, f)
}

// ReadCSV lit une table CSV complète (en-tête obligatoire)
func ReadCSV(table string, r io.Reader) (*domain.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.LoadError{Table: table, Err: fmt.Errorf("%w: empty file", domain.ErrMissingColumn)}
		}
		return nil, &domain.LoadError{Table: table, Err: err}
	}

	rows := make([][]string, 0, 1024)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.LoadError{Table: table, Row: len(rows) + 1, Err: err}
		}
		rows = append(rows, record)
	}

	return domain.NewRawTable(table, header, rows), nil
}
