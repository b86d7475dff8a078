package store

import (
	"fmt"
	"slices"

	"github.com/ctessum/cdf"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
)

type dimDef struct {
	name   string
	length int // 0 marks the unlimited dimension
}

type attrDef struct {
	name  string
	value any
}

type varDef struct {
	name  string
	typ   format.ElementType
	dims  []string
	attrs []attrDef
}

// Definer describes the structure of a new file in define mode.
//
// Every method returns the Definer so calls can be chained. The first error is
// kept and every later call becomes a no-op; Err and Create report it.
type Definer struct {
	dims    []dimDef
	vars    []*varDef
	globals []attrDef
	err     error
	created bool
}

// NewDefiner creates an empty definer.
func NewDefiner() *Definer {
	return &Definer{}
}

// NewDefinerFrom creates a definer preloaded with the dimensions, variables and
// attributes of an open store. Unlimited dimensions stay unlimited.
func NewDefinerFrom(s *Store) (*Definer, error) {
	d := NewDefiner()

	dims, err := s.Dimensions()
	if err != nil {
		return nil, err
	}
	for _, dim := range dims {
		if dim.Unlimited {
			d.AddUnlimitedDimension(dim.Name)
		} else {
			d.AddDimension(dim.Name, dim.Length)
		}
	}

	vars, err := s.Variables()
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		d.AddVariable(v.Name(), v.DataType(), v.Dimensions()...)

		attrs, err := v.Attributes()
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			d.AddVariableAttribute(v.Name(), a.Name(), a.Value())
		}
	}

	globals, err := s.GlobalAttributes()
	if err != nil {
		return nil, err
	}
	for _, a := range globals {
		d.AddGlobalAttribute(a.Name(), a.Value())
	}

	if d.err != nil {
		return nil, d.err
	}

	return d, nil
}

// Err returns the first error recorded by the definer.
func (d *Definer) Err() error {
	return d.err
}

// AddDimension adds a fixed-length dimension.
func (d *Definer) AddDimension(name string, length int) *Definer {
	if !d.ready() {
		return d
	}

	if length <= 0 {
		d.err = fmt.Errorf("%w: dimension %s length %d", errs.ErrInvalidShape, name, length)
		return d
	}

	return d.addDimension(name, length)
}

// AddUnlimitedDimension adds the record dimension. A file has at most one.
func (d *Definer) AddUnlimitedDimension(name string) *Definer {
	if !d.ready() {
		return d
	}

	for _, dim := range d.dims {
		if dim.length == 0 {
			d.err = fmt.Errorf("%w: unlimited dimension %s (have %s)", errs.ErrAlreadyExists, name, dim.name)
			return d
		}
	}

	return d.addDimension(name, 0)
}

// RenameDimension renames a dimension and every variable reference to it.
func (d *Definer) RenameDimension(name, newName string) *Definer {
	if !d.ready() {
		return d
	}

	i := d.dimIndex(name)
	if i < 0 {
		d.err = fmt.Errorf("%w: dimension %s", errs.ErrNotFound, name)
		return d
	}
	if d.dimIndex(newName) >= 0 {
		d.err = fmt.Errorf("%w: dimension %s", errs.ErrAlreadyExists, newName)
		return d
	}

	d.dims[i].name = newName
	for _, v := range d.vars {
		for j, dim := range v.dims {
			if dim == name {
				v.dims[j] = newName
			}
		}
	}

	return d
}

// AddVariable adds a variable over the named dimensions, outermost first. The
// unlimited dimension may only be the outermost one.
func (d *Definer) AddVariable(name string, typ format.ElementType, dims ...string) *Definer {
	if !d.ready() {
		return d
	}

	if typ.Size() == 0 {
		d.err = fmt.Errorf("%w: variable %s type %s", errs.ErrUnsupportedType, name, typ)
		return d
	}
	if d.varByName(name) != nil {
		d.err = fmt.Errorf("%w: variable %s", errs.ErrAlreadyExists, name)
		return d
	}

	for i, dim := range dims {
		j := d.dimIndex(dim)
		if j < 0 {
			d.err = fmt.Errorf("%w: dimension %s of variable %s", errs.ErrNotFound, dim, name)
			return d
		}
		if d.dims[j].length == 0 && i != 0 {
			d.err = fmt.Errorf("%w: unlimited dimension %s must be outermost in variable %s", errs.ErrInvalidShape, dim, name)
			return d
		}
	}

	d.vars = append(d.vars, &varDef{name: name, typ: typ, dims: slices.Clone(dims)})

	return d
}

// AddScalarVariable adds a variable without dimensions.
func (d *Definer) AddScalarVariable(name string, typ format.ElementType) *Definer {
	return d.AddVariable(name, typ)
}

// AddStringVariable adds a character variable holding one string of up to width
// characters per cell of dims. The string length dimension is named
// "<name>_strlen" and is created if needed.
func (d *Definer) AddStringVariable(name string, width int, dims ...string) *Definer {
	if !d.ready() {
		return d
	}

	strlen := name + "_strlen"
	if i := d.dimIndex(strlen); i >= 0 {
		if d.dims[i].length != width {
			d.err = fmt.Errorf("%w: dimension %s has length %d, want %d", errs.ErrAlreadyExists, strlen, d.dims[i].length, width)
			return d
		}
	} else {
		d.AddDimension(strlen, width)
	}

	return d.AddVariable(name, format.TypeChar, append(slices.Clone(dims), strlen)...)
}

// RenameVariable renames a variable.
func (d *Definer) RenameVariable(name, newName string) *Definer {
	if !d.ready() {
		return d
	}

	v := d.varByName(name)
	if v == nil {
		d.err = fmt.Errorf("%w: variable %s", errs.ErrNotFound, name)
		return d
	}
	if d.varByName(newName) != nil {
		d.err = fmt.Errorf("%w: variable %s", errs.ErrAlreadyExists, newName)
		return d
	}

	v.name = newName

	return d
}

// AddVariableAttribute adds an attribute to a variable.
//
// The value may be a string, a Go integer or float scalar, an *inf.Dec (stored as
// DOUBLE), or a slice of uint8, int8, int16, int32, float32 or float64.
func (d *Definer) AddVariableAttribute(variable, key string, value any) *Definer {
	if !d.ready() {
		return d
	}

	v := d.varByName(variable)
	if v == nil {
		d.err = fmt.Errorf("%w: variable %s", errs.ErrNotFound, variable)
		return d
	}

	v.attrs, d.err = addAttribute(v.attrs, variable, key, value)

	return d
}

// RenameVariableAttribute renames an attribute of a variable.
func (d *Definer) RenameVariableAttribute(variable, key, newKey string) *Definer {
	if !d.ready() {
		return d
	}

	v := d.varByName(variable)
	if v == nil {
		d.err = fmt.Errorf("%w: variable %s", errs.ErrNotFound, variable)
		return d
	}

	d.err = renameAttribute(v.attrs, variable, key, newKey)

	return d
}

// DeleteVariableAttribute removes an attribute from a variable.
func (d *Definer) DeleteVariableAttribute(variable, key string) *Definer {
	if !d.ready() {
		return d
	}

	v := d.varByName(variable)
	if v == nil {
		d.err = fmt.Errorf("%w: variable %s", errs.ErrNotFound, variable)
		return d
	}

	v.attrs, d.err = deleteAttribute(v.attrs, variable, key)

	return d
}

// AddGlobalAttribute adds a file attribute. See AddVariableAttribute for the
// accepted value types.
func (d *Definer) AddGlobalAttribute(key string, value any) *Definer {
	if !d.ready() {
		return d
	}

	d.globals, d.err = addAttribute(d.globals, "", key, value)

	return d
}

// RenameGlobalAttribute renames a file attribute.
func (d *Definer) RenameGlobalAttribute(key, newKey string) *Definer {
	if !d.ready() {
		return d
	}

	d.err = renameAttribute(d.globals, "", key, newKey)

	return d
}

// DeleteGlobalAttribute removes a file attribute.
func (d *Definer) DeleteGlobalAttribute(key string) *Definer {
	if !d.ready() {
		return d
	}

	d.globals, d.err = deleteAttribute(d.globals, "", key)

	return d
}

// ready reports whether the definer accepts changes, recording
// errs.ErrNotDefineMode after Create.
func (d *Definer) ready() bool {
	if d.err != nil {
		return false
	}
	if d.created {
		d.err = errs.ErrNotDefineMode
		return false
	}

	return true
}

func (d *Definer) addDimension(name string, length int) *Definer {
	if d.dimIndex(name) >= 0 {
		d.err = fmt.Errorf("%w: dimension %s", errs.ErrAlreadyExists, name)
		return d
	}

	d.dims = append(d.dims, dimDef{name: name, length: length})

	return d
}

func (d *Definer) dimIndex(name string) int {
	return slices.IndexFunc(d.dims, func(dim dimDef) bool { return dim.name == name })
}

func (d *Definer) varByName(name string) *varDef {
	i := slices.IndexFunc(d.vars, func(v *varDef) bool { return v.name == name })
	if i < 0 {
		return nil
	}

	return d.vars[i]
}

func (d *Definer) dimLength(name string) int {
	return d.dims[d.dimIndex(name)].length
}

// header materializes the definition as an immutable cdf header.
func (d *Definer) header() (*cdf.Header, error) {
	names := make([]string, len(d.dims))
	lengths := make([]int, len(d.dims))
	for i, dim := range d.dims {
		names[i] = dim.name
		lengths[i] = dim.length
	}

	h := cdf.NewHeader(names, lengths)
	for _, a := range d.globals {
		h.AddAttribute("", a.name, a.value)
	}
	for _, v := range d.vars {
		h.AddVariable(v.name, v.dims, exemplar(v.typ))
		for _, a := range v.attrs {
			h.AddAttribute(v.name, a.name, a.value)
		}
	}
	h.Define()

	if problems := h.Check(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", errs.ErrWriteFailed, problems[0])
	}

	return h, nil
}

func attrName(variable, key string) string {
	if variable == "" {
		return "global attribute " + key
	}

	return "attribute " + variable + ":" + key
}

func attrIndex(attrs []attrDef, key string) int {
	return slices.IndexFunc(attrs, func(a attrDef) bool { return a.name == key })
}

func addAttribute(attrs []attrDef, variable, key string, value any) ([]attrDef, error) {
	if attrIndex(attrs, key) >= 0 {
		return attrs, fmt.Errorf("%w: %s", errs.ErrAlreadyExists, attrName(variable, key))
	}

	v, err := attributeValue(value)
	if err != nil {
		return attrs, fmt.Errorf("%s: %w", attrName(variable, key), err)
	}

	return append(attrs, attrDef{name: key, value: v}), nil
}

func renameAttribute(attrs []attrDef, variable, key, newKey string) error {
	i := attrIndex(attrs, key)
	if i < 0 {
		return fmt.Errorf("%w: %s", errs.ErrNotFound, attrName(variable, key))
	}
	if attrIndex(attrs, newKey) >= 0 {
		return fmt.Errorf("%w: %s", errs.ErrAlreadyExists, attrName(variable, newKey))
	}

	attrs[i].name = newKey

	return nil
}

func deleteAttribute(attrs []attrDef, variable, key string) ([]attrDef, error) {
	i := attrIndex(attrs, key)
	if i < 0 {
		return attrs, fmt.Errorf("%w: %s", errs.ErrNotFound, attrName(variable, key))
	}

	return slices.Delete(attrs, i, i+1), nil
}
