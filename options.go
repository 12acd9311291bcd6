package compute

import (
	"github.com/hugr-lab/compute-go/columnar"
)

// ArithmeticOptions selects between the checked and unchecked variant of
// an arithmetic function. Construct fresh per call; never mutated during
// dispatch.
type ArithmeticOptions struct {
	// CheckOverflow selects the checked variant, which reports an error on
	// overflow instead of wrapping.
	CheckOverflow bool
}

// OptionsClass implements FunctionOptions.
func (ArithmeticOptions) OptionsClass() OptionsClass { return OptionsArithmetic }

// CompareOperator is one of the six comparison operators. The set is
// closed: the resolver in Compare matches every value exhaustively.
type CompareOperator int8

const (
	OpEqual CompareOperator = iota
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
)

// CompareOperators lists every operator, in declaration order. Tests and
// catalog listings iterate it; keep it in sync with the enum.
var CompareOperators = []CompareOperator{
	OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual,
}

// String returns the canonical operation name for the operator.
func (op CompareOperator) String() string { return string(op.fname()) }

// CompareOptions binds the comparison operator for Compare.
type CompareOptions struct {
	Op CompareOperator
}

// OptionsClass implements FunctionOptions.
func (CompareOptions) OptionsClass() OptionsClass { return OptionsCompare }

// SetLookupOptions carries the candidate value set for set-membership
// functions.
//
// ValueSet MUST be array-like (array or chunked array). When the value set
// is empty the probe's type is not validated at all: membership against an
// empty set is false for every input regardless of type, so type-agnostic
// empty-set sentinels are permitted.
type SetLookupOptions struct {
	// ValueSet holds the candidate values. REQUIRED, array-like.
	ValueSet columnar.Datum

	// SkipNulls excludes nulls in the value set from matching.
	SkipNulls bool
}

// OptionsClass implements FunctionOptions.
func (SetLookupOptions) OptionsClass() OptionsClass { return OptionsSetLookup }

// ElementWiseAggregateOptions controls null handling for the element-wise
// min/max functions over a variable number of arguments.
type ElementWiseAggregateOptions struct {
	// SkipNulls treats null elements as missing rather than poisoning the
	// result.
	SkipNulls bool
}

// DefaultElementWiseAggregateOptions returns the defaults (nulls skipped).
func DefaultElementWiseAggregateOptions() ElementWiseAggregateOptions {
	return ElementWiseAggregateOptions{SkipNulls: true}
}

// OptionsClass implements FunctionOptions.
func (ElementWiseAggregateOptions) OptionsClass() OptionsClass {
	return OptionsElementWiseAggregate
}
