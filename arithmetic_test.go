package compute

import (
	"context"
	"testing"

	"github.com/hugr-lab/compute-go/columnar"
)

func TestArithmeticVariantSelection(t *testing.T) {
	unary := func(entry func(context.Context, ArithmeticOptions, columnar.Datum) (columnar.Datum, error)) func(ctx context.Context, opts ArithmeticOptions) error {
		return func(ctx context.Context, opts ArithmeticOptions) error {
			_, err := entry(ctx, opts, columnar.NewDatum(int64(1)))
			return err
		}
	}
	binary := func(entry func(context.Context, ArithmeticOptions, columnar.Datum, columnar.Datum) (columnar.Datum, error)) func(ctx context.Context, opts ArithmeticOptions) error {
		return func(ctx context.Context, opts ArithmeticOptions) error {
			_, err := entry(ctx, opts, columnar.NewDatum(int64(1)), columnar.NewDatum(int64(2)))
			return err
		}
	}

	tests := []struct {
		name    string
		call    func(ctx context.Context, opts ArithmeticOptions) error
		base    Func
		checked Func
	}{
		{"abs", unary(AbsoluteValue), FuncAbs, FuncAbsChecked},
		{"negate", unary(Negate), FuncNegate, FuncNegateChecked},
		{"add", binary(Add), FuncAdd, FuncAddChecked},
		{"subtract", binary(Subtract), FuncSubtract, FuncSubtractChecked},
		{"multiply", binary(Multiply), FuncMultiply, FuncMultiplyChecked},
		{"divide", binary(Divide), FuncDivide, FuncDivideChecked},
		{"power", binary(Power), FuncPower, FuncPowerChecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, calls := newCaptureRegistry(t, tt.base, tt.checked)
			ctx := WithExecCtx(context.Background(), &ExecCtx{Registry: reg})

			if err := tt.call(ctx, ArithmeticOptions{}); err != nil {
				t.Fatalf("Unchecked call failed: %v", err)
			}
			if got := lastCall(t, calls).fn; got != tt.base {
				t.Errorf("Unchecked call dispatched to %q, want %q", got, tt.base)
			}

			if err := tt.call(ctx, ArithmeticOptions{CheckOverflow: true}); err != nil {
				t.Fatalf("Checked call failed: %v", err)
			}
			if got := lastCall(t, calls).fn; got != tt.checked {
				t.Errorf("Checked call dispatched to %q, want %q", got, tt.checked)
			}
		})
	}
}

func TestArithmeticUnknownVariant(t *testing.T) {
	// Only the unchecked name is registered; the checked call must fail at
	// lookup rather than silently fall back.
	reg, _ := newCaptureRegistry(t, FuncAdd)
	ctx := WithExecCtx(context.Background(), &ExecCtx{Registry: reg})

	_, err := Add(ctx, ArithmeticOptions{CheckOverflow: true},
		columnar.NewDatum(int64(1)), columnar.NewDatum(int64(2)))
	if err == nil {
		t.Error("Expected lookup failure for unregistered checked variant")
	}
}
