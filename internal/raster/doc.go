// Package raster reads and writes the fixed-header 24-bit raster format.
//
// Ownership boundary:
// - 14-byte file header and 40-byte info header
// - row padding to 4-byte boundaries
// - black/white pixel classification into grid labels
//
// Only pure black and pure white pixels are accepted. Rows are mapped in file
// order unless Options.Orientation asks for the bottom-up reading.
package raster
