// Package chaincode converts a single foreground region to and from its
// mid-crack code.
//
// A mid-crack code walks the midpoints of the cracks between foreground and
// background pixels, so diagonal digits move half a pixel on both axes. The
// loop starts on the top crack of the row-major first foreground pixel and
// ends back on it.
//
// Ownership boundary:
// - direction digits and their text form
// - boundary tracing (grid to code)
// - extent measurement and replay (code to grid)
package chaincode
