// Package compute provides the typed dispatch and options-resolution layer
// of a columnar compute facade over Apache Arrow data.
//
// Given an operation, a small ordered set of value containers (scalars,
// arrays, chunked arrays), and an optional options record, the package
// resolves which concrete kernel name to invoke, validates type and shape
// compatibility where the operation requires it, and forwards the call to
// a kernel registry. Kernel implementations themselves are external: the
// registry is a collaborator consulted through the FunctionRegistry
// interface, and this package never implements numeric algorithms.
//
// # Quick Start
//
// Register a kernel and call it through a typed entry point:
//
//	reg := compute.DefaultRegistry()
//	reg.Register(compute.FuncAdd, myAddKernel)
//	reg.Register(compute.FuncAddChecked, myCheckedAddKernel)
//
//	left := columnar.NewArrayDatum(leftArr)
//	right := columnar.NewArrayDatum(rightArr)
//
//	// Resolves to "add_checked" because overflow checking is requested.
//	res, err := compute.Add(ctx, compute.ArithmeticOptions{CheckOverflow: true}, left, right)
//
// # Entry points
//
// Each public entry point fixes its argument arity and binds exactly one
// options type, so a mismatched options record or wrong argument count is
// a compile error, not a runtime check:
//
//   - Arithmetic: AbsoluteValue, Negate, Add, Subtract, Multiply, Divide,
//     Power — ArithmeticOptions selects the checked or unchecked variant.
//   - Comparison: Compare — CompareOptions binds one of the six operators,
//     resolved exhaustively onto canonical names.
//   - Set membership: IsIn, IndexIn (plus IsInValues, IndexInValues
//     convenience forms) — SetLookupOptions carries the value set, which
//     is validated for type compatibility before any dispatch.
//   - Element-wise aggregates: ElementWiseMax, ElementWiseMin over
//     variable arity.
//   - Boolean, validity, and temporal functions take no options.
//
// # Execution context
//
// An ExecCtx bundles the allocator, registry, and logger a call uses. The
// process default is built exactly once; override it per call with
// WithExecCtx:
//
//	ctx = compute.WithExecCtx(ctx, &compute.ExecCtx{Registry: myRegistry})
//	res, err := compute.Invert(ctx, arg)
//
// This layer is synchronous and reentrant. It holds no mutable shared
// state: options are immutable per call, arguments are read-only, and the
// execution context is passed through, never owned or cached.
//
// # Errors
//
// Validation failures wrap arrow.ErrInvalid and name the offending types.
// A missing kernel surfaces as ErrFunctionNotFound. Kernel failures are
// returned unchanged; the package performs no retries and no recovery.
//
// # Remote surface
//
// The service subpackage exposes a registry over Arrow Flight: see
// github.com/hugr-lab/compute-go/service.
package compute
