package compute

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/compute-go/columnar"
)

// execSetLookup gates set-membership dispatch on type compatibility, then
// delegates to the registry. Validation order:
//
//  1. the value set must be array-like;
//  2. the probe's comparison type is its own type, or the decoded value
//     type when the probe is dictionary-encoded;
//  3. a nonempty value set must have exactly the comparison type.
//
// An empty value set skips the type check: membership against an empty set
// is false for every input, whatever its type.
func execSetLookup(ctx context.Context, fn Func, probe columnar.Datum, opts SetLookupOptions) (columnar.Datum, error) {
	if opts.ValueSet == nil || !opts.ValueSet.IsArrayLike() {
		return nil, fmt.Errorf("%w: set lookup value set must be an array or chunked array", arrow.ErrInvalid)
	}

	compareType := probe.Type()
	if dict, ok := compareType.(*arrow.DictionaryType); ok {
		compareType = dict.ValueType
	}

	if opts.ValueSet.Len() > 0 && !arrow.TypeEqual(compareType, opts.ValueSet.Type()) {
		return nil, fmt.Errorf("%w: array type didn't match type of values set: %s vs %s",
			arrow.ErrInvalid, compareType, opts.ValueSet.Type())
	}

	return CallFunction(ctx, fn, &opts, probe)
}

// IsIn computes, for each element of values, whether it is a member of the
// value set bound in options, producing a boolean-valued result.
func IsIn(ctx context.Context, opts SetLookupOptions, values columnar.Datum) (columnar.Datum, error) {
	return execSetLookup(ctx, FuncIsIn, values, opts)
}

// IsInValues is the two-argument convenience form of IsIn: it behaves
// exactly as IsIn with a SetLookupOptions holding valueSet and defaulted
// fields.
func IsInValues(ctx context.Context, values, valueSet columnar.Datum) (columnar.Datum, error) {
	return execSetLookup(ctx, FuncIsIn, values, SetLookupOptions{ValueSet: valueSet})
}

// IndexIn computes, for each element of values, its index in the value set
// bound in options, or null when absent.
func IndexIn(ctx context.Context, opts SetLookupOptions, values columnar.Datum) (columnar.Datum, error) {
	return execSetLookup(ctx, FuncIndexIn, values, opts)
}

// IndexInValues is the two-argument convenience form of IndexIn.
func IndexInValues(ctx context.Context, values, valueSet columnar.Datum) (columnar.Datum, error) {
	return execSetLookup(ctx, FuncIndexIn, values, SetLookupOptions{ValueSet: valueSet})
}
