package domain

import (
	"errors"
	"testing"
	"time"

	analyticsdomain "bikestore/internal/analytics/domain"
	shareddomain "bikestore/internal/shared/domain"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ExportFormat
		wantErr bool
	}{
		{"", ExportFormatCSV, false},
		{"csv", ExportFormatCSV, false},
		{"CSV", ExportFormatCSV, false},
		{" Parquet ", ExportFormatParquet, false},
		{"xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExportFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExportFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidExportFormat) {
				t.Errorf("error = %v, want ErrInvalidExportFormat", err)
			}
			if got != tt.want {
				t.Errorf("ParseExportFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewExportJob(t *testing.T) {
	dr := shareddomain.NewDateRange(
		time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 12, 28, 0, 0, 0, 0, time.UTC),
	)

	job, err := NewExportJob(ExportFormatParquet, ExportTypeSales, dr)
	if err != nil {
		t.Fatalf("NewExportJob() error = %v", err)
	}
	if job.FileName() != "sales_2016-01-01_2018-12-28.parquet" {
		t.Errorf("FileName() = %q", job.FileName())
	}
	if job.ID().String() == "" || job.CreatedAt().IsZero() {
		t.Error("job should have an id and a creation time")
	}

	other, _ := NewExportJob(ExportFormatCSV, ExportTypeCategory, dr)
	if other.ID() == job.ID() {
		t.Error("job ids must be unique")
	}
	if other.FileName() != "category_2016-01-01_2018-12-28.csv" {
		t.Errorf("FileName() = %q", other.FileName())
	}

	if _, err := NewExportJob(ExportFormatCSV, "regions", dr); !errors.Is(err, ErrInvalidExportType) {
		t.Errorf("unknown type error = %v, want ErrInvalidExportType", err)
	}
	if _, err := NewExportJob("xml", ExportTypeSales, dr); !errors.Is(err, ErrInvalidExportFormat) {
		t.Errorf("unknown format error = %v, want ErrInvalidExportFormat", err)
	}
}

func TestToFlatRows(t *testing.T) {
	summary := analyticsdomain.Summary{
		Dimension: analyticsdomain.DimensionCategory,
		Entries: []analyticsdomain.Entry{
			{Key: "Mountain", Total: shareddomain.MustParseMoney("200.125")},
		},
	}

	rows := ToFlatRows(summary)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "category" || rows[1][1] != "200.125" {
		t.Errorf("rows = %v", rows)
	}
}

func TestExecutiveSummary(t *testing.T) {
	rows := NewExecutiveSummary(analyticsdomain.Overview{
		TotalSales: shareddomain.MustParseMoney("350"),
		Orders:     3,
		Products:   2,
		Customers:  3,
		Lines:      3,
	}).Rows()

	if len(rows) != 5 || rows[0][0] != "total_sales" || rows[0][1] != "350" || rows[1][1] != "3" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSalesReport_EmptyTable(t *testing.T) {
	report := NewSalesReport(analyticsdomain.NewFactTable(nil))
	if len(report.Rows()) != 0 {
		t.Error("empty table should give no rows")
	}
	if len(report.Columns()) != len(SalesReportHeaders()) {
		t.Error("columns must match the sales headers")
	}
}
