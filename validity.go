package compute

import (
	"context"

	"github.com/hugr-lab/compute-go/columnar"
)

// Validity functions.
var (
	// IsValid produces true for each non-null element.
	IsValid = eagerUnary(FuncIsValid)

	// IsNull produces true for each null element.
	IsNull = eagerUnary(FuncIsNull)

	// IsNan produces true for each floating-point NaN element.
	IsNan = eagerUnary(FuncIsNan)
)

// FillNull replaces each null element of values with fillValue.
func FillNull(ctx context.Context, values, fillValue columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, FuncFillNull, nil, values, fillValue)
}

// IfElse selects ifTrue or ifFalse element-wise according to cond.
func IfElse(ctx context.Context, cond, ifTrue, ifFalse columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, FuncIfElse, nil, cond, ifTrue, ifFalse)
}
