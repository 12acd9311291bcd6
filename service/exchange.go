package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	compute "github.com/hugr-lab/compute-go"
	"github.com/hugr-lab/compute-go/columnar"
	"github.com/hugr-lab/compute-go/internal/recovery"
)

// DoExchange streams record batches through a unary compute function.
//
// Protocol:
//   - The client sets the "compute-function" gRPC header to a registered
//     unary function name (variant-resolved, e.g. "negate_checked").
//   - The client streams record batches; the server applies the function
//     to every column of every batch and streams back result batches.
//
// The result schema keeps the input field names with the output types of
// the first computed batch; clients must stream type-homogeneous batches.
func (s *Server) DoExchange(stream flight.FlightService_DoExchangeServer) error {
	return recovery.RecoverToError(s.logger, "DoExchange", func() error {
		return s.runExchange(stream)
	})
}

func (s *Server) runExchange(stream flight.FlightService_DoExchangeServer) error {
	ctx := stream.Context()

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Errorf(codes.InvalidArgument, "missing metadata")
	}

	names := md.Get("compute-function")
	if len(names) == 0 {
		return status.Errorf(codes.InvalidArgument, "missing compute-function header")
	}

	fn := compute.Func(names[0])
	if spec, ok := compute.Catalog(fn); ok && (spec.Arity.IsVarArgs || spec.Arity.NArgs != 1) {
		return status.Errorf(codes.InvalidArgument,
			"function %q is not unary; DoExchange applies unary functions column-wise", names[0])
	}

	s.logger.Debug("DoExchange requested", "function", string(fn))

	reader, err := flight.NewRecordReader(stream, ipc.WithAllocator(s.allocator))
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return status.Errorf(codes.Internal, "failed to create record reader: %v", err)
	}

	cctx := compute.WithExecCtx(ctx, s.execCtx())

	inputCh := make(chan arrow.RecordBatch, 1)
	eg, gctx := errgroup.WithContext(ctx)

	// Reader stage. Runs outside the errgroup so stream errors reach the
	// client through readErr instead of cancelling the write side early.
	var readErr error
	go func() {
		defer close(inputCh)
		defer reader.Release()

		for reader.Next() {
			record := reader.RecordBatch()
			record.Retain() // passed to the compute stage

			select {
			case inputCh <- record:
			case <-gctx.Done():
				record.Release()
				return
			}
		}
		if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
			readErr = err
		}
	}()

	// Compute and write stage.
	eg.Go(func() error {
		var writer *flight.Writer
		defer func() {
			if writer != nil {
				writer.Close()
			}
		}()

		for record := range inputCh {
			out, err := s.applyColumns(cctx, fn, record)
			record.Release()
			if err != nil {
				return toStatus(err)
			}

			if writer == nil {
				writer = flight.NewRecordWriter(stream,
					ipc.WithSchema(out.Schema()), ipc.WithAllocator(s.allocator))
			}

			err = writer.Write(out)
			out.Release()
			if err != nil {
				return status.Errorf(codes.Internal, "failed to write result batch: %v", err)
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	if readErr != nil {
		return status.Errorf(codes.Internal, "error reading input: %v", readErr)
	}
	return nil
}

// applyColumns runs fn over every column of the batch and assembles the
// result batch, keeping input field names.
func (s *Server) applyColumns(ctx context.Context, fn compute.Func, record arrow.RecordBatch) (arrow.RecordBatch, error) {
	ncols := int(record.NumCols())
	cols := make([]arrow.Array, ncols)
	fields := make([]arrow.Field, ncols)

	release := func() {
		for _, c := range cols {
			if c != nil {
				c.Release()
			}
		}
	}

	for i := 0; i < ncols; i++ {
		res, err := compute.CallFunction(ctx, fn, nil, columnar.NewArrayDatum(record.Column(i)))
		if err != nil {
			release()
			return nil, err
		}
		if res == nil {
			release()
			return nil, fmt.Errorf("function %q returned no result for column %q",
				string(fn), record.ColumnName(i))
		}

		ad, ok := res.(*columnar.ArrayDatum)
		if !ok {
			res.Release()
			release()
			return nil, fmt.Errorf("function %q produced a %s result for column %q, expected an array",
				string(fn), res.Kind(), record.ColumnName(i))
		}
		if ad.Value.Len() != int(record.NumRows()) {
			release()
			ad.Release()
			return nil, fmt.Errorf("function %q produced %d rows for column %q, expected %d",
				string(fn), ad.Value.Len(), record.ColumnName(i), record.NumRows())
		}

		cols[i] = ad.Value
		fields[i] = arrow.Field{Name: record.ColumnName(i), Type: ad.Value.DataType(), Nullable: true}
	}

	schema := arrow.NewSchema(fields, nil)
	out := array.NewRecordBatch(schema, cols, record.NumRows())
	release() // the record batch retains the columns
	return out, nil
}
