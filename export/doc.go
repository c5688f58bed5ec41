// Package export writes merged datasets to interchange formats. CSV
// output goes through the standard encoding, XLSX through excelize.
package export
