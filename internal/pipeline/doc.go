// Package pipeline wires file I/O to the tracer and the codec.
//
// Ownership boundary:
// - mode registry (-m, -i, -c, -d)
// - artifact conversion per mode
// - file read/write, per-run logging and metrics
package pipeline
