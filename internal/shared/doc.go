// Package shared holds helpers used by more than one package.
//
// testutil provides a capturing slog handler and in-memory workbook
// fixtures for tests. Nothing here is imported by production code.
package shared
