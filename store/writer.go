package store

import (
	"fmt"
	"os"
	"slices"

	"github.com/ctessum/cdf"
	"go.uber.org/zap"

	"github.com/arloliu/ncgrid/array"
	"github.com/arloliu/ncgrid/compress"
	"github.com/arloliu/ncgrid/endian"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/index"
	"github.com/arloliu/ncgrid/internal/options"
	"github.com/arloliu/ncgrid/internal/pool"
)

// numRecsOffset is the position of the big-endian record count in the header.
const numRecsOffset = 4

// Writer writes variable data into a newly created file.
type Writer struct {
	path        string
	header      *cdf.Header
	file        *cdf.File
	out         *os.File
	buf         *pool.ByteBuffer
	compression format.CompressionType
	vars        map[string]*varDef
	order       []*varDef
	dims        map[string]int
	records     int
	logger      *zap.Logger
	stats       compress.Stats
	closed      bool
}

// Create writes the header to path and returns a Writer for the data.
//
// Non-record variables are initialized with their fill value (_FillValue when it
// is a single value of the variable type, the NetCDF default otherwise). When the
// compression (from WithCompression or the path extension) is not none, the file
// is built in memory and compressed on Close.
//
// Parameters:
//   - path: Output path
//   - opts: WithLogger, WithCompression
//
// Returns:
//   - *Writer: The writer; Close must be called to finish the file
//   - error: The definer's sticky error, errs.ErrNotDefineMode on a second Create,
//     or an I/O error
func (d *Definer) Create(path string, opts ...Option) (*Writer, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.created {
		return nil, errs.ErrNotDefineMode
	}

	s, err := options.Build(defaultSettings, opts...)
	if err != nil {
		return nil, err
	}

	h, err := d.header()
	if err != nil {
		return nil, err
	}

	w := &Writer{
		path:        path,
		header:      h,
		compression: s.compressionFor(path),
		vars:        make(map[string]*varDef, len(d.vars)),
		dims:        make(map[string]int, len(d.dims)),
		logger:      s.logger,
	}
	for _, v := range d.vars {
		w.vars[v.name] = v
		w.order = append(w.order, v)
	}
	for _, dim := range d.dims {
		w.dims[dim.name] = dim.length
	}

	var rw cdf.ReaderWriterAt
	if w.compression == format.CompressionNone {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w.out = f
		rw = f
	} else {
		w.buf = pool.GetFileBuffer()
		rw = w.buf
	}

	w.file, err = cdf.Create(rw, h)
	if err == nil {
		err = w.fill()
	}
	if err != nil {
		w.release()
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrWriteFailed, path, err)
	}

	d.created = true
	w.logger.Debug("created netcdf file",
		zap.String("path", path),
		zap.Stringer("compression", w.compression),
		zap.Int("dimensions", len(d.dims)),
		zap.Int("variables", len(d.vars)))

	return w, nil
}

// Path returns the output path.
func (w *Writer) Path() string {
	return w.path
}

// Write stores arr into the named variable starting at origin (all zeros when
// omitted). For record variables the outermost axis may extend past the current
// record count, which appends records.
//
// Parameters:
//   - name: Variable name
//   - arr: Data; its type must equal the variable type and its rank the variable rank
//   - origin: Optional first index on every axis
//
// Returns:
//   - error: errs.ErrNotFound, errs.ErrTypeMismatch, errs.ErrRankMismatch,
//     errs.ErrIndexOutOfRange, errs.ErrClosed, or errs.ErrWriteFailed
func (w *Writer) Write(name string, arr *array.Array, origin ...int) error {
	if w.closed {
		return errs.ErrClosed
	}
	if arr == nil {
		return fmt.Errorf("%w: array for variable %s", errs.ErrNilValue, name)
	}

	v, ok := w.vars[name]
	if !ok {
		return fmt.Errorf("%w: variable %s", errs.ErrNotFound, name)
	}
	if arr.Type() != v.typ {
		return fmt.Errorf("%w: variable %s is %s, array is %s", errs.ErrTypeMismatch, name, v.typ, arr.Type())
	}

	shape := arr.Shape()
	if len(shape) != len(v.dims) {
		return fmt.Errorf("%w: variable %s rank %d, array rank %d", errs.ErrRankMismatch, name, len(v.dims), len(shape))
	}
	if len(origin) == 0 {
		origin = make([]int, len(shape))
	}

	full := w.extents(v)
	record := len(v.dims) > 0 && w.dims[v.dims[0]] == 0
	if err := checkSection(origin, shape, full, record, -1); err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	if index.Size(shape) == 0 {
		return nil
	}

	if record {
		if err := w.growRecords(origin[0] + shape[0]); err != nil {
			return fmt.Errorf("%w: variable %s: %w", errs.ErrWriteFailed, name, err)
		}
	}

	runs := sectionRuns(origin, shape, full)

	var err error
	switch values := arr.Values().(type) {
	case []int8:
		err = writeRuns(w.file, name, unsigned(values), runs)
	case []uint8:
		err = writeRuns(w.file, name, values, runs)
	case []int16:
		err = writeRuns(w.file, name, values, runs)
	case []int32:
		err = writeRuns(w.file, name, values, runs)
	case []float32:
		err = writeRuns(w.file, name, values, runs)
	case []float64:
		err = writeRuns(w.file, name, values, runs)
	default:
		err = fmt.Errorf("%w: %T", errs.ErrUnsupportedType, values)
	}

	if err != nil {
		w.logger.Warn("variable write failed",
			zap.String("path", w.path),
			zap.String("variable", name),
			zap.Error(err))

		return fmt.Errorf("%w: variable %s: %w", errs.ErrWriteFailed, name, err)
	}

	return nil
}

// Close records the number of records in the header, compresses the image when
// requested and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	defer w.release()

	if w.out != nil {
		if err := cdf.UpdateNumRecs(w.out); err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrWriteFailed, w.path, err)
		}
		if fi, err := w.out.Stat(); err == nil {
			w.stats = compress.Stats{
				Algorithm:      format.CompressionNone,
				OriginalSize:   fi.Size(),
				CompressedSize: fi.Size(),
			}
		}
		if err := w.out.Close(); err != nil {
			return err
		}
		w.out = nil

		return nil
	}

	return w.flushCompressed()
}

// Stats returns the compression statistics of the finished file. Both sizes are
// the file size for uncompressed output; the result is zero before Close.
func (w *Writer) Stats() compress.Stats {
	return w.stats
}

func (w *Writer) flushCompressed() error {
	numRecs := w.header.NumRecs(int64(w.buf.Len()))
	field := endian.StorageEngine().AppendUint32(nil, uint32(int32(numRecs)))
	if _, err := w.buf.WriteAt(field, numRecsOffset); err != nil {
		return err
	}

	codec, err := compress.CreateCodec(w.compression, w.path)
	if err != nil {
		return err
	}

	payload, err := codec.Compress(w.buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrWriteFailed, w.path, err)
	}

	if err := os.WriteFile(w.path, payload, 0o644); err != nil {
		return err
	}

	w.stats = compress.Stats{
		Algorithm:      w.compression,
		OriginalSize:   int64(w.buf.Len()),
		CompressedSize: int64(len(payload)),
	}
	w.logger.Debug("wrote compressed netcdf file",
		zap.String("path", w.path),
		zap.Stringer("compression", w.compression),
		zap.Int64("bytes", w.stats.OriginalSize),
		zap.Int64("compressed_bytes", w.stats.CompressedSize),
		zap.Float64("ratio", w.stats.CompressionRatio()))

	return nil
}

func (w *Writer) release() {
	if w.out != nil {
		_ = w.out.Close()
		w.out = nil
	}
	if w.buf != nil {
		pool.PutFileBuffer(w.buf)
		w.buf = nil
	}
}

// extents returns the defined dimension lengths of v; 0 for the record axis.
func (w *Writer) extents(v *varDef) []int {
	full := make([]int, len(v.dims))
	for i, dim := range v.dims {
		full[i] = w.dims[dim]
	}

	return full
}

// fill initializes every non-record variable with its fill value.
func (w *Writer) fill() error {
	for _, v := range w.order {
		if w.header.IsRecordVariable(v.name) {
			continue
		}

		full := w.extents(v)
		section := []run{{begin: make([]int, len(full)), end: lastIndex(full), n: index.Size(full)}}
		if err := w.fillSection(v, section); err != nil {
			return err
		}
	}

	return nil
}

// growRecords fills the records between the current record count and n, so
// every record variable of a new record holds its fill value until written.
func (w *Writer) growRecords(n int) error {
	for ; w.records < n; w.records++ {
		for _, v := range w.order {
			if !w.header.IsRecordVariable(v.name) {
				continue
			}

			full := w.extents(v)
			begin := make([]int, len(full))
			end := lastIndex(full)
			begin[0], end[0] = w.records, w.records
			section := []run{{begin: begin, end: end, n: index.Size(full[1:])}}
			if err := w.fillSection(v, section); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *Writer) fillSection(v *varDef, section []run) error {
	n := section[0].n

	switch fv := w.header.FillValue(v.name).(type) {
	case int8:
		return writeRuns(w.file, v.name, repeat(uint8(fv), n), section)
	case uint8:
		return writeRuns(w.file, v.name, repeat(fv, n), section)
	case int16:
		return writeRuns(w.file, v.name, repeat(fv, n), section)
	case int32:
		return writeRuns(w.file, v.name, repeat(fv, n), section)
	case float32:
		return writeRuns(w.file, v.name, repeat(fv, n), section)
	case float64:
		return writeRuns(w.file, v.name, repeat(fv, n), section)
	default:
		return fmt.Errorf("%w: fill value %T of variable %s", errs.ErrUnsupportedType, fv, v.name)
	}
}

func lastIndex(full []int) []int {
	last := slices.Clone(full)
	for i := range last {
		last[i]--
	}

	return last
}

func repeat[T cdfElement](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func unsigned(values []int8) []uint8 {
	out := make([]uint8, len(values))
	for i, b := range values {
		out[i] = uint8(b)
	}

	return out
}
