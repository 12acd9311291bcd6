package compute

import (
	"context"
	"log/slog"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/compute-go/columnar"
)

// ExecCtx bundles the cross-call resources a function call needs: the
// memory allocator kernels allocate results with, the registry consulted
// for dispatch, and a logger for kernels that want one. The dispatch layer
// never mutates anything reachable from an ExecCtx, so a single ExecCtx is
// safe to share across concurrent callers.
type ExecCtx struct {
	// Alloc is the allocator for result data.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Alloc memory.Allocator

	// Registry maps function names to kernels.
	// OPTIONAL: Uses DefaultRegistry() if nil.
	Registry FunctionRegistry

	// Logger for kernel-internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// defaultCtx is constructed exactly once at first use rather than kept as
// ambient mutable state; per-call overrides go through WithExecCtx.
var defaultCtx = sync.OnceValue(func() *ExecCtx {
	return &ExecCtx{
		Alloc:    memory.DefaultAllocator,
		Registry: DefaultRegistry(),
		Logger:   slog.Default(),
	}
})

// DefaultCtx returns the process-wide default execution context.
func DefaultCtx() *ExecCtx { return defaultCtx() }

// ctxKey is a private type for context keys to avoid collisions.
type ctxKey int

const execCtxKey ctxKey = iota

// WithExecCtx returns a context carrying ectx. CallFunction and every typed
// entry point pick it up; absent an override the default context is used.
func WithExecCtx(ctx context.Context, ectx *ExecCtx) context.Context {
	return context.WithValue(ctx, execCtxKey, ectx)
}

// ExecCtxFromContext returns the execution context carried by ctx, or the
// process default when none is set. Unset fields are filled from the
// defaults without mutating the caller's ExecCtx.
func ExecCtxFromContext(ctx context.Context) *ExecCtx {
	ectx, ok := ctx.Value(execCtxKey).(*ExecCtx)
	if !ok || ectx == nil {
		return DefaultCtx()
	}
	if ectx.Alloc != nil && ectx.Registry != nil && ectx.Logger != nil {
		return ectx
	}

	filled := *ectx
	if filled.Alloc == nil {
		filled.Alloc = memory.DefaultAllocator
	}
	if filled.Registry == nil {
		filled.Registry = DefaultRegistry()
	}
	if filled.Logger == nil {
		filled.Logger = slog.Default()
	}
	return &filled
}

// CallFunction dispatches a call to the kernel registered under fn. The
// arguments are borrowed for the duration of the call; the result datum is
// created by the kernel and returned unchanged, as is any failure. No
// retries, no recovery: a failed call is terminal for that call.
//
// Callers normally use the typed entry points (Add, Compare, IsIn, ...)
// which fix arity and bind the options type structurally.
func CallFunction(ctx context.Context, fn Func, opts FunctionOptions, args ...columnar.Datum) (columnar.Datum, error) {
	ectx := ExecCtxFromContext(ctx)

	kernel, err := ectx.Registry.Lookup(fn)
	if err != nil {
		return nil, err
	}

	return kernel.Execute(ctx, ectx, args, opts)
}
