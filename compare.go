package compute

import (
	"context"
	"fmt"

	"github.com/hugr-lab/compute-go/columnar"
)

// fname maps the operator onto its canonical function name. The mapping is
// a bijection over the closed operator set; every value is matched
// explicitly so a new operator surfaces as a panic here and a failing
// bijection test, not a silent fallthrough.
func (op CompareOperator) fname() Func {
	switch op {
	case OpEqual:
		return FuncEqual
	case OpNotEqual:
		return FuncNotEqual
	case OpGreater:
		return FuncGreater
	case OpGreaterEqual:
		return FuncGreaterEqual
	case OpLess:
		return FuncLess
	case OpLessEqual:
		return FuncLessEqual
	}
	// Unreachable for in-domain input; out-of-domain values are a
	// programming-contract violation, not a recoverable error.
	panic(fmt.Sprintf("compute: invalid CompareOperator(%d)", int8(op)))
}

// Compare compares left and right element-wise with the operator bound in
// options, producing a boolean-valued result.
func Compare(ctx context.Context, opts CompareOptions, left, right columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, opts.Op.fname(), &opts, left, right)
}
