package service

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	compute "github.com/hugr-lab/compute-go"
)

// toStatus maps dispatch-layer failures onto gRPC status codes:
// validation failures become InvalidArgument, unknown functions become
// NotFound, everything else (kernel execution failures) Internal. Errors
// that already carry a status pass through unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok && status.Code(err) != codes.Unknown {
		return err
	}

	switch {
	case errors.Is(err, arrow.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, compute.ErrFunctionNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
