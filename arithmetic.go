package compute

import (
	"context"

	"github.com/hugr-lab/compute-go/columnar"
)

// checkedVariant returns the checked function name when options ask for
// overflow checking, else the base name. Pure: the boolean domain is
// total, so there is no failure path.
func checkedVariant(base, checked Func, opts ArithmeticOptions) Func {
	if opts.CheckOverflow {
		return checked
	}
	return base
}

func arithmeticUnary(ctx context.Context, base, checked Func, opts ArithmeticOptions, arg columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, checkedVariant(base, checked, opts), nil, arg)
}

func arithmeticBinary(ctx context.Context, base, checked Func, opts ArithmeticOptions, left, right columnar.Datum) (columnar.Datum, error) {
	return CallFunction(ctx, checkedVariant(base, checked, opts), nil, left, right)
}

// AbsoluteValue computes the absolute value of each element of arg.
//
// ArithmeticOptions selects whether overflow is checked: the checked
// variant errors on overflow, the unchecked variant is faster but wraps.
func AbsoluteValue(ctx context.Context, opts ArithmeticOptions, arg columnar.Datum) (columnar.Datum, error) {
	return arithmeticUnary(ctx, FuncAbs, FuncAbsChecked, opts, arg)
}

// Negate computes the negation of each element of arg.
func Negate(ctx context.Context, opts ArithmeticOptions, arg columnar.Datum) (columnar.Datum, error) {
	return arithmeticUnary(ctx, FuncNegate, FuncNegateChecked, opts, arg)
}

// Add computes the element-wise sum of left and right. When one argument
// is a scalar and the other an array, the scalar is applied to each
// element.
func Add(ctx context.Context, opts ArithmeticOptions, left, right columnar.Datum) (columnar.Datum, error) {
	return arithmeticBinary(ctx, FuncAdd, FuncAddChecked, opts, left, right)
}

// Subtract computes the element-wise difference of left and right.
func Subtract(ctx context.Context, opts ArithmeticOptions, left, right columnar.Datum) (columnar.Datum, error) {
	return arithmeticBinary(ctx, FuncSubtract, FuncSubtractChecked, opts, left, right)
}

// Multiply computes the element-wise product of left and right.
func Multiply(ctx context.Context, opts ArithmeticOptions, left, right columnar.Datum) (columnar.Datum, error) {
	return arithmeticBinary(ctx, FuncMultiply, FuncMultiplyChecked, opts, left, right)
}

// Divide computes the element-wise quotient of left and right. Division by
// zero is an execution error regardless of overflow checking.
func Divide(ctx context.Context, opts ArithmeticOptions, left, right columnar.Datum) (columnar.Datum, error) {
	return arithmeticBinary(ctx, FuncDivide, FuncDivideChecked, opts, left, right)
}

// Power computes base**exp element-wise.
func Power(ctx context.Context, opts ArithmeticOptions, base, exp columnar.Datum) (columnar.Datum, error) {
	return arithmeticBinary(ctx, FuncPower, FuncPowerChecked, opts, base, exp)
}
