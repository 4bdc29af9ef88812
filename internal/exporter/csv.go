package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"resumenapi/internal/infrastructure"
	"resumenapi/internal/validation"
	"resumenapi/pkg/contracts/domain"
)

// utf8BOM lets Excel detect the encoding of the file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	return &CSVWriter{logger: infrastructure.WithComponent(logger, "csv_exporter")}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
	Comma     rune
}

// Write encodes the options to w.
func (cw *CSVWriter) Write(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if options.Comma != 0 {
		writer.Comma = options.Comma
	}

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSV writes the options to filePath, replacing any existing file.
func (cw *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	cw.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := cw.Write(file, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteReport writes the summary table of report into dir and returns the
// path of the new file. The name is derived from the uploaded file name the
// same way as the summary workbook, with a .csv extension.
func (cw *CSVWriter) WriteReport(dir, uploadName string, report *domain.Report) (string, error) {
	table := report.SummaryTable()
	path := filepath.Join(dir, CSVFilename(uploadName))

	err := cw.WriteCSV(path, WriteOptions{
		Headers:   table.Columns,
		Records:   table.Rows,
		BOMPrefix: true,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// CSVFilename maps an uploaded file name to resumen_<base>.csv.
func CSVFilename(original string) string {
	name := validation.OutputFilename(original)
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
}
