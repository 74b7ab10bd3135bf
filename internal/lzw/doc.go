// Package lzw is a dictionary-substitution codec over the eight chain code
// digits.
//
// The dictionary is seeded with "0".."7" and grows by one entry per emitted
// code; it lives only for one Compress or Decompress call. Codes are written
// with a fixed byte width announced in the first byte of the artifact.
package lzw
