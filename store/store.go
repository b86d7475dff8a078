package store

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/ctessum/cdf"
	"go.uber.org/zap"

	"github.com/arloliu/ncgrid/compress"
	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/internal/options"
	"github.com/arloliu/ncgrid/internal/pool"
)

// Store is an open NetCDF classic file.
type Store struct {
	path   string
	file   *cdf.File
	size   int64
	closer io.Closer
	buf    *pool.ByteBuffer
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// Dimension describes a named dimension. For the unlimited (record) dimension
// Length is the current number of records.
type Dimension struct {
	Name      string
	Length    int
	Unlimited bool
}

// Open opens the NetCDF classic file at path.
//
// When the path extension names a compression (or WithCompression is given) the
// whole file is decompressed into memory first.
//
// Parameters:
//   - path: File path
//   - opts: WithLogger, WithCompression
//
// Returns:
//   - *Store: The open store; call Close to release it
//   - error: errs.ErrNotNetCDF for files without a valid header, or an I/O error
func Open(path string, opts ...Option) (*Store, error) {
	s, err := options.Build(defaultSettings, opts...)
	if err != nil {
		return nil, err
	}

	ct := s.compressionFor(path)
	if ct == format.CompressionNone {
		return openFile(path, s)
	}

	return openCompressed(path, ct, s)
}

// OpenReaderAt opens a NetCDF classic image held by rw. size is the image length
// in bytes, used to count records. The caller keeps ownership of rw.
func OpenReaderAt(rw cdf.ReaderWriterAt, size int64, opts ...Option) (*Store, error) {
	s, err := options.Build(defaultSettings, opts...)
	if err != nil {
		return nil, err
	}

	return newStore("", rw, size, s)
}

func openFile(path string, s *settings) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	st, err := newStore(path, f, info.Size(), s)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	st.closer = f

	return st, nil
}

func openCompressed(path string, ct format.CompressionType, s *settings) (*Store, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	in := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(in)

	_, err = in.ReadFrom(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrReadFailed, path, err)
	}

	raw, err := codec.Decompress(in.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrNotNetCDF, path, err)
	}

	buf := pool.GetFileBuffer()
	_, _ = buf.Write(raw)

	st, err := newStore(path, buf, int64(buf.Len()), s)
	if err != nil {
		pool.PutFileBuffer(buf)
		return nil, err
	}
	st.buf = buf

	s.logger.Debug("decompressed netcdf file",
		zap.String("path", path),
		zap.Stringer("compression", ct),
		zap.Int("compressed_bytes", in.Len()),
		zap.Int("bytes", len(raw)))

	return st, nil
}

func newStore(path string, rw cdf.ReaderWriterAt, size int64, s *settings) (*Store, error) {
	file, err := cdf.Open(rw)
	if err != nil {
		s.logger.Debug("not a netcdf file", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrNotNetCDF, path, err)
	}

	st := &Store{
		path:   path,
		file:   file,
		size:   size,
		logger: s.logger,
	}

	s.logger.Debug("opened netcdf file",
		zap.String("path", path),
		zap.Int64("bytes", size),
		zap.Int("variables", len(file.Header.Variables())))

	return st, nil
}

// Path returns the path the store was opened from, or "" for OpenReaderAt.
func (s *Store) Path() string {
	return s.path
}

// Close releases the file. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.buf != nil {
		pool.PutFileBuffer(s.buf)
		s.buf = nil
	}

	var err error
	if s.closer != nil {
		err = s.closer.Close()
	}

	s.logger.Debug("closed netcdf file", zap.String("path", s.path))

	return err
}

// Dimensions returns all dimensions in definition order.
func (s *Store) Dimensions() ([]Dimension, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errs.ErrClosed
	}

	names := s.file.Header.Dimensions("")
	lengths := s.file.Header.Lengths("")
	out := make([]Dimension, len(names))
	for i, name := range names {
		out[i] = s.dimension(name, lengths[i])
	}

	return out, nil
}

// FindDimension returns the named dimension, or errs.ErrNotFound.
func (s *Store) FindDimension(name string) (Dimension, error) {
	dims, err := s.Dimensions()
	if err != nil {
		return Dimension{}, err
	}

	for _, d := range dims {
		if d.Name == name {
			return d, nil
		}
	}

	return Dimension{}, fmt.Errorf("%w: dimension %s", errs.ErrNotFound, name)
}

// DimensionLength returns the length of the named dimension, or 0 when it does not
// exist or the store is closed.
func (s *Store) DimensionLength(name string) int {
	d, err := s.FindDimension(name)
	if err != nil {
		return 0
	}

	return d.Length
}

// HasDimension reports whether the named dimension exists.
func (s *Store) HasDimension(name string) bool {
	_, err := s.FindDimension(name)
	return err == nil
}

// Variables returns all variables in definition order.
func (s *Store) Variables() ([]*Variable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errs.ErrClosed
	}

	names := s.file.Header.Variables()
	out := make([]*Variable, 0, len(names))
	for _, name := range names {
		out = append(out, s.variable(name))
	}

	return out, nil
}

// FindVariable returns the named variable, or errs.ErrNotFound.
func (s *Store) FindVariable(name string) (*Variable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errs.ErrClosed
	}

	if !slices.Contains(s.file.Header.Variables(), name) {
		return nil, fmt.Errorf("%w: variable %s", errs.ErrNotFound, name)
	}

	return s.variable(name), nil
}

// HasVariable reports whether the named variable exists.
func (s *Store) HasVariable(name string) bool {
	_, err := s.FindVariable(name)
	return err == nil
}

// GlobalAttributes returns the file attributes in definition order.
func (s *Store) GlobalAttributes() ([]Attribute, error) {
	return s.attributes("")
}

// FindGlobalAttribute returns the named file attribute, or errs.ErrNotFound.
func (s *Store) FindGlobalAttribute(name string) (Attribute, error) {
	return s.attribute("", name)
}

// HasGlobalAttribute reports whether the named file attribute exists.
func (s *Store) HasGlobalAttribute(name string) bool {
	_, err := s.FindGlobalAttribute(name)
	return err == nil
}

func (s *Store) attributes(variable string) ([]Attribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errs.ErrClosed
	}

	h := s.file.Header
	names := h.Attributes(variable)
	out := make([]Attribute, len(names))
	for i, name := range names {
		out[i] = Attribute{name: name, value: h.GetAttribute(variable, name)}
	}

	return out, nil
}

func (s *Store) attribute(variable, name string) (Attribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Attribute{}, errs.ErrClosed
	}

	value := s.file.Header.GetAttribute(variable, name)
	if value == nil {
		if variable == "" {
			return Attribute{}, fmt.Errorf("%w: global attribute %s", errs.ErrNotFound, name)
		}

		return Attribute{}, fmt.Errorf("%w: attribute %s:%s", errs.ErrNotFound, variable, name)
	}

	return Attribute{name: name, value: value}, nil
}

// numRecs returns the number of complete records in the file.
func (s *Store) numRecs() int {
	return int(s.file.Header.NumRecs(s.size))
}

func (s *Store) dimension(name string, length int) Dimension {
	if length == 0 {
		return Dimension{Name: name, Length: s.numRecs(), Unlimited: true}
	}

	return Dimension{Name: name, Length: length}
}

func (s *Store) variable(name string) *Variable {
	h := s.file.Header

	return &Variable{
		store:  s,
		name:   name,
		dims:   h.Dimensions(name),
		typ:    elementType(h.ZeroValue(name, 0)),
		record: h.IsRecordVariable(name),
	}
}

// elementType maps a cdf zero value to its element type.
func elementType(zero any) format.ElementType {
	switch zero.(type) {
	case []uint8:
		return format.TypeByte
	case string:
		return format.TypeChar
	case []int16:
		return format.TypeShort
	case []int32:
		return format.TypeInt
	case []float32:
		return format.TypeFloat
	case []float64:
		return format.TypeDouble
	default:
		return format.TypeInvalid
	}
}

// exemplar returns the cdf value whose dynamic type selects typ.
func exemplar(typ format.ElementType) any {
	switch typ {
	case format.TypeByte:
		return []uint8{}
	case format.TypeChar:
		return ""
	case format.TypeShort:
		return []int16{}
	case format.TypeInt:
		return []int32{}
	case format.TypeFloat:
		return []float32{}
	case format.TypeDouble:
		return []float64{}
	default:
		return nil
	}
}
