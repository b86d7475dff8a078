// Package store reads and writes NetCDF classic files.
//
// It is the format store behind the grid codec: it resolves dimensions, variables
// and attributes by name, reads variables (or rectangular sections of them) into
// array.Array values, and derives packing factors from the conventional
// scale_factor, add_offset, _FillValue and missing_value attributes.
//
// # Reading
//
//	st, err := store.Open("rain.nc.gz")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	v, err := st.FindVariable("rainfall")
//	arr, err := v.Read()
//	factor, err := v.Factor(packing.GridMissing())
//
// Files whose extension names a compression (.gz, .zst, .lz4, .sz) are decompressed
// into a pooled in-memory buffer on open.
//
// # Writing
//
// New files are described in define mode with a Definer and materialized by Create:
//
//	w, err := store.NewDefiner().
//	    AddDimension(store.DimY, 2).
//	    AddDimension(store.DimX, 3).
//	    AddVariable("rainfall", format.TypeShort, store.DimY, store.DimX).
//	    AddVariableAttribute("rainfall", store.AttrScaleFactor, 0.1).
//	    Create("rain.nc")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	err = w.Write("rainfall", arr)
//
// Definer errors are sticky: the first failing call is reported by Err and by
// Create, so calls can be chained.
//
// A Store is safe for concurrent reads. A Writer is not safe for concurrent use.
package store
