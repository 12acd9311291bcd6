// Package columnar provides the Datum value container used by the compute
// dispatch layer.
//
// A Datum is a tagged value over the Arrow value shapes a compute call can
// carry: a single scalar, a flat array, a chunked array, or a table. Datums
// borrow the wrapped value; they do not retain it. Callers keep ownership
// and release the underlying value themselves (Datum.Release forwards for
// convenience when the datum is the last reference holder).
package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/scalar"
)

// DatumKind identifies which variant a Datum holds.
type DatumKind int

const (
	// KindScalar is a single value with a logical type.
	KindScalar DatumKind = iota
	// KindArray is a flat Arrow array.
	KindArray
	// KindChunked is a chunked Arrow array.
	KindChunked
	// KindTable is a table-like collection of columns.
	KindTable
)

// String returns the kind name used in error messages.
func (k DatumKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindChunked:
		return "chunked_array"
	case KindTable:
		return "table"
	}
	return fmt.Sprintf("DatumKind(%d)", int(k))
}

// A Datum is a value passed to or returned from a compute function call.
// The dispatch layer treats datums as read-only inputs for the duration of
// a call.
type Datum interface {
	isDatum() // closed variant marker

	// Kind returns the variant held by this datum.
	Kind() DatumKind

	// Type returns the logical type of the value. Table datums have no
	// single logical type and return nil.
	Type() arrow.DataType

	// Len returns the element count: 1 for scalars, the row count for
	// arrays, chunked arrays, and tables.
	Len() int64

	// IsArrayLike reports whether the datum is an array or chunked array.
	IsArrayLike() bool

	// Release releases the wrapped value. Call only when the datum holds
	// the last reference.
	Release()
}

// ScalarDatum wraps a single scalar value.
type ScalarDatum struct {
	Value scalar.Scalar
}

func (ScalarDatum) isDatum() {}
func (ScalarDatum) Kind() DatumKind { return KindScalar }
func (ScalarDatum) Len() int64 { return 1 }
func (ScalarDatum) IsArrayLike() bool { return false }
func (d *ScalarDatum) Type() arrow.DataType { return d.Value.DataType() }

func (d *ScalarDatum) Release() {
	if r, ok := d.Value.(scalar.Releasable); ok {
		r.Release()
	}
}

// ArrayDatum wraps a flat Arrow array.
type ArrayDatum struct {
	Value arrow.Array
}

func (ArrayDatum) isDatum() {}
func (ArrayDatum) Kind() DatumKind { return KindArray }
func (ArrayDatum) IsArrayLike() bool { return true }
func (d *ArrayDatum) Type() arrow.DataType { return d.Value.DataType() }
func (d *ArrayDatum) Len() int64 { return int64(d.Value.Len()) }
func (d *ArrayDatum) Release() { d.Value.Release() }

// ChunkedDatum wraps a chunked Arrow array.
type ChunkedDatum struct {
	Value *arrow.Chunked
}

func (ChunkedDatum) isDatum() {}
func (ChunkedDatum) Kind() DatumKind { return KindChunked }
func (ChunkedDatum) IsArrayLike() bool { return true }
func (d *ChunkedDatum) Type() arrow.DataType { return d.Value.DataType() }
func (d *ChunkedDatum) Len() int64 { return int64(d.Value.Len()) }
func (d *ChunkedDatum) Release() { d.Value.Release() }

// TableDatum wraps a table. No cataloged scalar operation consumes tables,
// but the kernel contract allows registry extensions that do.
type TableDatum struct {
	Value arrow.Table
}

func (TableDatum) isDatum() {}
func (TableDatum) Kind() DatumKind { return KindTable }
func (TableDatum) IsArrayLike() bool { return false }
func (TableDatum) Type() arrow.DataType { return nil }
func (d *TableDatum) Len() int64 { return d.Value.NumRows() }
func (d *TableDatum) Release() { d.Value.Release() }

// NewScalarDatum wraps a scalar value.
func NewScalarDatum(v scalar.Scalar) Datum { return &ScalarDatum{Value: v} }

// NewArrayDatum wraps a flat array.
func NewArrayDatum(v arrow.Array) Datum { return &ArrayDatum{Value: v} }

// NewChunkedDatum wraps a chunked array.
func NewChunkedDatum(v *arrow.Chunked) Datum { return &ChunkedDatum{Value: v} }

// NewTableDatum wraps a table.
func NewTableDatum(v arrow.Table) Datum { return &TableDatum{Value: v} }

// NewDatum wraps an arbitrary supported value as a Datum. Arrow values are
// wrapped directly; any other Go value is converted to a scalar via
// scalar.MakeScalar.
func NewDatum(value any) Datum {
	switch v := value.(type) {
	case Datum:
		return v
	case arrow.Array:
		return &ArrayDatum{Value: v}
	case *arrow.Chunked:
		return &ChunkedDatum{Value: v}
	case arrow.Table:
		return &TableDatum{Value: v}
	case scalar.Scalar:
		return &ScalarDatum{Value: v}
	default:
		return &ScalarDatum{Value: scalar.MakeScalar(value)}
	}
}
