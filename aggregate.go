package compute

import (
	"context"

	"github.com/hugr-lab/compute-go/columnar"
)

// ElementWiseMax computes the element-wise maximum across a variable
// number of arguments.
func ElementWiseMax(ctx context.Context, opts ElementWiseAggregateOptions, args ...columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, FuncElementWiseMax, &opts, args...)
}

// ElementWiseMin computes the element-wise minimum across a variable
// number of arguments.
func ElementWiseMin(ctx context.Context, opts ElementWiseAggregateOptions, args ...columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, FuncElementWiseMin, &opts, args...)
}
