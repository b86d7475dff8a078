// Package grid converts between semantic value lists and raw arrays for the grid
// layouts used by gridded and station data: one dimension, Y-X, Time-Y-X and
// Time-Station.
//
// # Decoding
//
// A Decoder reads raw arrays through a packing factor and returns fresh lists of
// physical values owned by the caller:
//
//	dec, _ := grid.NewDecoder(
//	    grid.WithFactor(factor),
//	    grid.WithInvertRow(true), // grid is stored south-up
//	)
//	values, _ := dec.YX(arr) // row-major, top row first
//
// Decoding is data parallel: large grids are split across goroutines and the result
// order is always the sequential row-major order, whatever the worker count.
//
// Arrays are validated before any value is read. A rank mismatch reports
// errs.ErrRankMismatch and an out-of-range time or station index reports
// errs.ErrIndexOutOfRange; a decoder never returns a silently truncated result.
//
// # Assembling
//
// The Assemble functions go the other way, building a raw array of a chosen element
// type from semantic lists (values are stored as given, so pack them with
// packing.Factor.PackAll first when the variable is packed).
package grid
