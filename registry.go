package compute

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hugr-lab/compute-go/columnar"
)

var (
	// ErrFunctionNotFound is returned when the registry has no kernel for
	// the resolved function name.
	ErrFunctionNotFound = errors.New("function not found")

	// ErrFunctionExists is returned when registering a kernel under a name
	// that is already taken.
	ErrFunctionExists = errors.New("function already registered")

	// ErrNilKernel is returned when registering a nil kernel.
	ErrNilKernel = errors.New("kernel cannot be nil")
)

// FunctionOptions is the marker interface for per-call parameter bundles.
// Options records are immutable for the duration of a call.
type FunctionOptions interface {
	OptionsClass() OptionsClass
}

// Arity describes how many arguments a function accepts.
type Arity struct {
	// NArgs is the exact argument count, or the minimum count when
	// IsVarArgs is true.
	NArgs int

	// IsVarArgs indicates the function accepts NArgs or more arguments.
	IsVarArgs bool
}

// Unary returns the arity of a one-argument function.
func Unary() Arity { return Arity{NArgs: 1} }

// Binary returns the arity of a two-argument function.
func Binary() Arity { return Arity{NArgs: 2} }

// Ternary returns the arity of a three-argument function.
func Ternary() Arity { return Arity{NArgs: 3} }

// VarArgs returns the arity of a function accepting minArgs or more
// arguments.
func VarArgs(minArgs int) Arity { return Arity{NArgs: minArgs, IsVarArgs: true} }

// A Kernel is a concrete implementation of one named operation, owned by a
// registry. Kernels MUST be goroutine-safe: a registry may be shared across
// many concurrent callers.
//
// Kernels receive arguments read-only and return a freshly created result
// datum. A kernel that blocks or runs asynchronously must respect ctx
// cancellation; the dispatch layer consults nothing beyond the returned
// error.
type Kernel interface {
	Execute(ctx context.Context, ectx *ExecCtx, args []columnar.Datum, opts FunctionOptions) (columnar.Datum, error)
}

// KernelFunc adapts a plain function to the Kernel interface.
type KernelFunc func(ctx context.Context, ectx *ExecCtx, args []columnar.Datum, opts FunctionOptions) (columnar.Datum, error)

// Execute implements Kernel.
func (f KernelFunc) Execute(ctx context.Context, ectx *ExecCtx, args []columnar.Datum, opts FunctionOptions) (columnar.Datum, error) {
	return f(ctx, ectx, args, opts)
}

// FunctionRegistry maps function names to kernels. Implementations MUST be
// goroutine-safe.
type FunctionRegistry interface {
	// Lookup returns the kernel registered under fn, or an error wrapping
	// ErrFunctionNotFound.
	Lookup(fn Func) (Kernel, error)

	// Register adds a kernel under fn. Registering a duplicate name or a
	// nil kernel is an error.
	Register(fn Func, k Kernel) error

	// Names returns the registered function names in sorted order.
	Names() []Func
}

// Registry is the default FunctionRegistry: a runtime-extensible,
// string-keyed kernel table guarded by a RWMutex.
type Registry struct {
	mu      sync.RWMutex
	kernels map[Func]Kernel
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kernels: make(map[Func]Kernel)}
}

// Lookup implements FunctionRegistry.
func (r *Registry) Lookup(fn Func) (Kernel, error) {
	r.mu.RLock()
	k, ok := r.kernels[fn]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, string(fn))
	}
	return k, nil
}

// Register implements FunctionRegistry.
func (r *Registry) Register(fn Func, k Kernel) error {
	if k == nil {
		return fmt.Errorf("%w: %q", ErrNilKernel, string(fn))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.kernels[fn]; ok {
		return fmt.Errorf("%w: %q", ErrFunctionExists, string(fn))
	}
	r.kernels[fn] = k
	return nil
}

// Names implements FunctionRegistry.
func (r *Registry) Names() []Func {
	r.mu.RLock()
	names := make([]Func, 0, len(r.kernels))
	for fn := range r.kernels {
		names = append(names, fn)
	}
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// defaultRegistry is built exactly once; callers extend it at process
// start and override it per call through ExecCtx when isolation is needed.
var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the process-wide default registry.
func DefaultRegistry() *Registry { return defaultRegistry() }
