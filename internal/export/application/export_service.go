package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	analyticsapp "bikestore/internal/analytics/application"
	analyticsdomain "bikestore/internal/analytics/domain"
	"bikestore/internal/export/domain"
	shareddomain "bikestore/internal/shared/domain"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"
)

// ExportResult contenu exporté et job associé
type ExportResult struct {
	Job  *domain.ExportJob
	Data []byte
}

// ExportService génère les rapports téléchargeables
type ExportService struct {
	dashboard *analyticsapp.DashboardService
	batchSize int
	logger    *zap.Logger
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(dashboard *analyticsapp.DashboardService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		dashboard: dashboard,
		batchSize: 1000,
		logger:    logger,
	}
}

// Export produit le rapport demandé sur la vue filtrée par les critères
func (s *ExportService) Export(
	ctx context.Context,
	exportType domain.ExportType,
	format domain.ExportFormat,
	criteria analyticsdomain.Criteria,
) (*ExportResult, error) {
	job, err := domain.NewExportJob(format, exportType, criteria.DateRange())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.tabular(exportType, criteria)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case domain.ExportFormatParquet:
		data, err = EncodeParquet(table)
	default:
		data, err = EncodeCSV(table, s.batchSize)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s as %s: %w", exportType, format, err)
	}

	s.logger.Info("report exported",
		zap.String("job_id", job.ID().String()),
		zap.String("type", string(exportType)),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)
	return &ExportResult{Job: job, Data: data}, nil
}

// tabular construit la donnée à plat correspondant au type d'export
func (s *ExportService) tabular(exportType domain.ExportType, criteria analyticsdomain.Criteria) (domain.Tabular, error) {
	switch exportType {
	case domain.ExportTypeSales:
		filtered, err := s.dashboard.Filtered(criteria)
		if err != nil {
			return nil, err
		}
		return domain.NewSalesReport(filtered), nil
	case domain.ExportTypeSummary:
		filtered, err := s.dashboard.Filtered(criteria)
		if err != nil {
			return nil, err
		}
		return domain.NewExecutiveSummary(analyticsdomain.ComputeOverview(filtered)), nil
	default:
		return s.dashboard.Summary(string(exportType), criteria)
	}
}

// WriteCSV écrit une donnée à plat en CSV (en-tête puis lignes)
// encoding/csv met entre guillemets les champs contenant le séparateur,
// un guillemet ou un saut de ligne.
func WriteCSV(w io.Writer, t domain.Tabular, batchSize int) error {
	cw := csv.NewWriter(w)
	for i, record := range domain.ToFlatRows(t) {
		if err := cw.Write(record); err != nil {
			return err
		}
		// flush régulier pour limiter le buffer interne
		if batchSize > 0 && (i+1)%batchSize == 0 {
			cw.Flush()
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV retourne le CSV UTF-8 d'une donnée à plat
func EncodeCSV(t domain.Tabular, batchSize int) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 64*1024))
	if err := WriteCSV(buffer, t, batchSize); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeParquet retourne le fichier Parquet d'une donnée à plat
// Toutes les colonnes sont des chaînes UTF8: les décimaux gardent leur
// représentation exacte.
func EncodeParquet(t domain.Tabular) ([]byte, error) {
	columns := t.Columns()
	md := make([]string, 0, len(columns))
	for _, col := range columns {
		md = append(md, fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY", col))
	}

	var buffer bytes.Buffer
	fw := writerfile.NewWriterFile(&buffer)
	pw, err := writer.NewCSVWriter(md, fw, 4)
	if err != nil {
		return nil, fmt.Errorf("parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range t.Rows() {
		record := make([]*string, len(columns))
		for i := range columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record[i] = &value
		}
		if err := pw.WriteString(record); err != nil {
			return nil, fmt.Errorf("parquet write: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet finalize: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ParseSummaryCSV relit un résumé exporté en CSV (dimension,total)
func ParseSummaryCSV(r io.Reader) (analyticsdomain.Summary, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return analyticsdomain.Summary{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) != 2 || header[1] != "total" {
		return analyticsdomain.Summary{}, fmt.Errorf("unexpected summary header %v", header)
	}

	summary := analyticsdomain.Summary{Dimension: header[0], Entries: []analyticsdomain.Entry{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return analyticsdomain.Summary{}, err
		}
		total, err := shareddomain.ParseMoney(record[1])
		if err != nil {
			return analyticsdomain.Summary{}, err
		}
		summary.Entries = append(summary.Entries, analyticsdomain.Entry{Key: record[0], Total: total})
	}
	return summary, nil
}
