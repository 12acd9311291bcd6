package compute

import (
	"context"

	"github.com/hugr-lab/compute-go/columnar"
)

// UnaryFunc is a typed entry point fixing one argument and no options.
type UnaryFunc func(ctx context.Context, arg columnar.Datum) (columnar.Datum, error)

// BinaryFunc is a typed entry point fixing two arguments and no options.
type BinaryFunc func(ctx context.Context, left, right columnar.Datum) (columnar.Datum, error)

// eagerUnary builds the typed entry point for an options-free unary
// function. One constructor instead of a wrapper body per name keeps the
// per-operation surface declarative.
func eagerUnary(fn Func) UnaryFunc {
	return func(ctx context.Context, arg columnar.Datum) (columnar.Datum, error) {
		return CallFunction(ctx, fn, nil, arg)
	}
}

// eagerBinary builds the typed entry point for an options-free binary
// function.
func eagerBinary(fn Func) BinaryFunc {
	return func(ctx context.Context, left, right columnar.Datum) (columnar.Datum, error) {
		return CallFunction(ctx, fn, nil, left, right)
	}
}

// Boolean functions. The Kleene variants use three-valued logic where null
// participates as "unknown"; the plain variants propagate null.
var (
	// Invert negates each boolean element.
	Invert = eagerUnary(FuncInvert)

	// And computes the element-wise conjunction.
	And = eagerBinary(FuncAnd)

	// KleeneAnd computes the element-wise conjunction with Kleene logic.
	KleeneAnd = eagerBinary(FuncKleeneAnd)

	// Or computes the element-wise disjunction.
	Or = eagerBinary(FuncOr)

	// KleeneOr computes the element-wise disjunction with Kleene logic.
	KleeneOr = eagerBinary(FuncKleeneOr)

	// Xor computes the element-wise exclusive disjunction.
	Xor = eagerBinary(FuncXor)

	// AndNot computes left AND NOT right element-wise.
	AndNot = eagerBinary(FuncAndNot)

	// KleeneAndNot computes left AND NOT right with Kleene logic.
	KleeneAndNot = eagerBinary(FuncKleeneAndNot)
)
