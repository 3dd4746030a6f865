package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bikestore/internal/shared/domain"

	"github.com/google/uuid"
)

var (
	// ErrInvalidExportFormat format d'export inconnu
	ErrInvalidExportFormat = errors.New("invalid export format")
	// ErrInvalidExportType type d'export inconnu
	ErrInvalidExportType = errors.New("invalid export type")
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "CSV"
	ExportFormatParquet ExportFormat = "Parquet"
)

// ParseExportFormat lit un format ("csv", "parquet"), insensible à la casse
func ParseExportFormat(value string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "csv":
		return ExportFormatCSV, nil
	case "parquet":
		return ExportFormatParquet, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidExportFormat, value)
	}
}

// Extension retourne l'extension de fichier du format
func (f ExportFormat) Extension() string {
	if f == ExportFormatParquet {
		return "parquet"
	}
	return "csv"
}

// ContentType retourne le type MIME du format
func (f ExportFormat) ContentType() string {
	if f == ExportFormatParquet {
		return "application/octet-stream"
	}
	return "text/csv; charset=utf-8"
}

// ExportType représente le type d'export
type ExportType string

const (
	ExportTypeSales    ExportType = "sales"
	ExportTypeSummary  ExportType = "summary"
	ExportTypeCategory ExportType = "category"
	ExportTypeMonth    ExportType = "month"
	ExportTypeProducts ExportType = "products"
	ExportTypeStaff    ExportType = "staff"
)

var exportTypes = map[ExportType]struct{}{
	ExportTypeSales:    {},
	ExportTypeSummary:  {},
	ExportTypeCategory: {},
	ExportTypeMonth:    {},
	ExportTypeProducts: {},
	ExportTypeStaff:    {},
}

// ExportJob représente un job d'export
type ExportJob struct {
	id         uuid.UUID
	format     ExportFormat
	exportType ExportType
	dateRange  domain.DateRange
	createdAt  time.Time
}

// NewExportJob crée un nouveau job d'export avec validation
func NewExportJob(
	format ExportFormat,
	exportType ExportType,
	dateRange domain.DateRange,
) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, ErrInvalidExportFormat
	}
	if _, ok := exportTypes[exportType]; !ok {
		return nil, fmt.Errorf("%w %q", ErrInvalidExportType, exportType)
	}

	return &ExportJob{
		id:         uuid.New(),
		format:     format,
		exportType: exportType,
		dateRange:  dateRange,
		createdAt:  time.Now(),
	}, nil
}

// ID retourne l'identifiant du job
func (ej *ExportJob) ID() uuid.UUID {
	return ej.id
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le type d'export
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// DateRange retourne la période d'export
func (ej *ExportJob) DateRange() domain.DateRange {
	return ej.dateRange
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// FileName nom du fichier téléchargé, ex: sales_2016-01-01_2018-12-28.csv
func (ej *ExportJob) FileName() string {
	return fmt.Sprintf("%s_%s_%s.%s",
		ej.exportType,
		ej.dateRange.Start().Format(domain.DateLayout),
		ej.dateRange.End().Format(domain.DateLayout),
		ej.format.Extension(),
	)
}
