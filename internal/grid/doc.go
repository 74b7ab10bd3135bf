// Package grid owns the binary pixel buffer shared by the raster codec and the
// boundary tracer.
//
// Ownership boundary:
// - foreground/background labels
// - bounds-checked cell access over contiguous storage
// - image.PalettedImage view for stdlib-compatible encoders
package grid
