// Package errs defines the sentinel errors shared by every ncgrid package.
//
// Call sites wrap these sentinels with fmt.Errorf("%w: ...") so the message names
// the offending argument while callers can still match with errors.Is:
//
//	values, err := dec.YX(arr)
//	if errors.Is(err, errs.ErrRankMismatch) {
//	    // arr is not a 2D grid
//	}
package errs

import "errors"

// Precondition violations raised by the codec, index and grid packages.
var (
	ErrNilFactor        = errors.New("packing factor must not be nil")
	ErrNilValue         = errors.New("value must not be nil")
	ErrZeroScale        = errors.New("scale factor must not be zero")
	ErrInvalidDecimal   = errors.New("invalid decimal value")
	ErrRankMismatch     = errors.New("array rank mismatch")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrEmptyInput       = errors.New("empty input")
	ErrSizeMismatch     = errors.New("value count does not match grid size")
	ErrInvalidShape     = errors.New("invalid array shape")
	ErrInvalidAxisOrder = errors.New("axis order is not a permutation of (time, row, col)")
	ErrTypeMismatch     = errors.New("element type mismatch")
	ErrUnsupportedType  = errors.New("unsupported element type")
)

// Format store errors.
var (
	ErrNotNetCDF     = errors.New("not a NetCDF classic file")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotDefineMode = errors.New("definer is not in define mode")
	ErrClosed        = errors.New("store is closed")
	ErrReadFailed    = errors.New("read failed")
	ErrWriteFailed   = errors.New("write failed")
)

// Configuration errors.
var (
	ErrUnknownPreset          = errors.New("unknown packing preset")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
