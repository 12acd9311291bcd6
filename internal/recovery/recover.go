// Package recovery provides panic recovery around kernel execution.
// Kernels are user-registered code; a panicking kernel must fail the
// request, not crash the service.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RecoverToError wraps a function call with panic recovery.
// If the function panics, the panic becomes a gRPC Internal error.
//
// Example:
//
//	err := recovery.RecoverToError(logger, "DoExchange", func() error {
//	    return srv.runExchange(stream)
//	})
func RecoverToError(logger *slog.Logger, operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			err = status.Errorf(codes.Internal, "%s panicked: %v", operation, r)
		}
	}()

	return fn()
}

// RecoverToValue wraps a function returning a value and error.
// If the function panics, the zero value and an error are returned.
//
// Example:
//
//	res, err := recovery.RecoverToValue(logger, "call_function", func() (columnar.Datum, error) {
//	    return compute.CallFunction(ctx, fn, opts, args...)
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			var zero T
			result = zero
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	return fn()
}
