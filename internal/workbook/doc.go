// Package workbook converts between .xlsx files and domain tables.
//
// Decoding picks a preferred sheet by name and falls back to the first
// sheet. Encoding writes one sheet per table in argument order.
package workbook
