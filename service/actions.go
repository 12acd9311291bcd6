package service

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	compute "github.com/hugr-lab/compute-go"
	"github.com/hugr-lab/compute-go/columnar"
	"github.com/hugr-lab/compute-go/internal/msgpack"
	"github.com/hugr-lab/compute-go/internal/recovery"
	"github.com/hugr-lab/compute-go/internal/serialize"
)

// callRequest is the MessagePack body of the call_function action.
// Function names a registered kernel (variant-resolved, e.g.
// "add_checked"); Args are primitive scalar values.
type callRequest struct {
	Function  string `msgpack:"function"`
	Args      []any  `msgpack:"args"`
	SkipNulls *bool  `msgpack:"skip_nulls,omitempty"`
}

// callResponse is the MessagePack body of the call_function result.
type callResponse struct {
	Type    string `msgpack:"type"`
	Value   string `msgpack:"value"`
	IsValid bool   `msgpack:"is_valid"`
}

// ListActions advertises the supported action types.
func (s *Server) ListActions(_ *flight.Empty, stream flight.FlightService_ListActionsServer) error {
	actions := []*flight.ActionType{
		{Type: "list_functions", Description: "List registered compute functions with arity and options class"},
		{Type: "call_function", Description: "Call a registered function with scalar arguments"},
	}

	for _, a := range actions {
		if err := stream.Send(a); err != nil {
			return err
		}
	}
	return nil
}

// DoAction executes server actions: catalog discovery and scalar calls.
func (s *Server) DoAction(action *flight.Action, stream flight.FlightService_DoActionServer) error {
	ctx := stream.Context()

	s.logger.Debug("DoAction called",
		"type", action.GetType(),
		"body_size", len(action.GetBody()),
	)

	switch action.GetType() {
	case "list_functions":
		return s.handleListFunctions(stream)

	case "call_function":
		return s.handleCallFunction(ctx, action, stream)

	default:
		return status.Errorf(codes.Unimplemented, "unknown action type: %s", action.GetType())
	}
}

// handleListFunctions returns the zstd-compressed MessagePack listing of
// every registered function, annotated with catalog metadata where the
// name is part of the stable catalog.
func (s *Server) handleListFunctions(stream flight.FlightService_DoActionServer) error {
	names := s.registry.Names()

	listing := serialize.Listing{Functions: make([]serialize.FunctionInfo, 0, len(names))}
	for _, fn := range names {
		info := serialize.FunctionInfo{Name: string(fn)}
		if spec, ok := compute.Catalog(fn); ok {
			info.NArgs = spec.Arity.NArgs
			info.Variadic = spec.Arity.IsVarArgs
			info.Options = string(spec.Options)
		}
		listing.Functions = append(listing.Functions, info)
	}

	payload, err := serialize.MarshalListing(listing)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to serialize function listing: %v", err)
	}

	return stream.Send(&flight.Result{Body: payload})
}

// decodeCallRequest parses and validates a call_function body.
func (s *Server) decodeCallRequest(body []byte) (compute.Func, compute.FunctionOptions, []columnar.Datum, error) {
	var req callRequest
	if err := msgpack.Decode(body, &req); err != nil {
		return "", nil, nil, status.Errorf(codes.InvalidArgument, "invalid call_function request: %v", err)
	}
	if req.Function == "" {
		return "", nil, nil, status.Error(codes.InvalidArgument, "call_function request missing function name")
	}

	fn := compute.Func(req.Function)

	var opts compute.FunctionOptions
	if spec, ok := compute.Catalog(fn); ok {
		if spec.Options == compute.OptionsSetLookup {
			return "", nil, nil, status.Errorf(codes.InvalidArgument,
				"function %q requires an array value set and is not callable through call_function", req.Function)
		}
		if !spec.Arity.IsVarArgs && len(req.Args) != spec.Arity.NArgs {
			return "", nil, nil, status.Errorf(codes.InvalidArgument,
				"function %q accepts %d arguments but %d passed", req.Function, spec.Arity.NArgs, len(req.Args))
		}
		if spec.Arity.IsVarArgs && len(req.Args) < spec.Arity.NArgs {
			return "", nil, nil, status.Errorf(codes.InvalidArgument,
				"function %q needs at least %d arguments but %d passed", req.Function, spec.Arity.NArgs, len(req.Args))
		}
		if spec.Options == compute.OptionsElementWiseAggregate {
			o := compute.DefaultElementWiseAggregateOptions()
			if req.SkipNulls != nil {
				o.SkipNulls = *req.SkipNulls
			}
			opts = &o
		}
	}

	args := make([]columnar.Datum, len(req.Args))
	for i, v := range req.Args {
		args[i] = columnar.NewDatum(v)
	}
	return fn, opts, args, nil
}

// handleCallFunction executes a registered function over scalar arguments
// and returns the scalar result MessagePack-encoded.
func (s *Server) handleCallFunction(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	fn, opts, args, err := s.decodeCallRequest(action.GetBody())
	if err != nil {
		return err
	}

	cctx := compute.WithExecCtx(ctx, s.execCtx())

	res, err := recovery.RecoverToValue(s.logger, "call_function", func() (columnar.Datum, error) {
		return compute.CallFunction(cctx, fn, opts, args...)
	})
	if err != nil {
		return toStatus(err)
	}
	if res == nil {
		return status.Errorf(codes.Internal, "function %q returned no result", string(fn))
	}
	defer res.Release()

	sd, ok := res.(*columnar.ScalarDatum)
	if !ok {
		return status.Errorf(codes.Internal, "scalar call produced a %s result", res.Kind())
	}

	payload, err := msgpack.Encode(callResponse{
		Type:    sd.Type().String(),
		Value:   sd.Value.String(),
		IsValid: sd.Value.IsValid(),
	})
	if err != nil {
		return status.Errorf(codes.Internal, "failed to encode result: %v", err)
	}

	return stream.Send(&flight.Result{Body: payload})
}
