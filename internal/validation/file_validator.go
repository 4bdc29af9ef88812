package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile is returned for uploads that are not Excel workbooks.
var ErrUnsupportedFile = errors.New("unsupported file")

// UnsupportedFileMessage is the user-facing rejection text for ErrUnsupportedFile.
const UnsupportedFileMessage = "El archivo debe ser Excel (.xls/.xlsx)"

// OutputPrefix is prepended to the base name of every generated file.
const OutputPrefix = "resumen_"

var spreadsheetExtensions = []string{".xlsx", ".xls"}

// ValidateSpreadsheetName accepts names ending in .xls or .xlsx in any case.
// Office lock files (~$name.xlsx) are rejected.
func ValidateSpreadsheetName(name string) error {
	base := baseName(name)
	if base == "" {
		return fmt.Errorf("%w: missing file name", ErrUnsupportedFile)
	}
	if strings.HasPrefix(base, "~$") {
		return fmt.Errorf("%w: %s is a temporary Excel file", ErrUnsupportedFile, base)
	}

	lower := strings.ToLower(base)
	for _, ext := range spreadsheetExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFile, base)
}

// OutputFilename derives the download name for an uploaded file: the
// directory is dropped and everything from the first '.' on is replaced.
//
//	"entregas.xlsx"        -> "resumen_entregas.xlsx"
//	"ruta.lunes.xlsx"      -> "resumen_ruta.xlsx"
func OutputFilename(name string) string {
	base := baseName(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return OutputPrefix + base + ".xlsx"
}

// baseName strips both slash and backslash separated directories, since
// browsers on Windows may send full client paths. Whitespace is kept, so a
// trailing space after the extension fails validation.
func baseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// FileValidator checks local files for the command line tool.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateSpreadsheet checks that path exists, is a readable regular file
// and has a spreadsheet name.
func (v *FileValidator) ValidateSpreadsheet(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if err := ValidateSpreadsheetName(path); err != nil {
		v.logger.Error("File is not an Excel file",
			slog.String("file", path),
			slog.String("extension", strings.ToLower(filepath.Ext(path))))
		return err
	}
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
