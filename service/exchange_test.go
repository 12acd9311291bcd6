package service

import (
	"context"
	"io"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	compute "github.com/hugr-lab/compute-go"
	"github.com/hugr-lab/compute-go/columnar"
)

// identityKernel returns its single array argument retained.
func identityKernel() compute.Kernel {
	return compute.KernelFunc(func(_ context.Context, _ *compute.ExecCtx, args []columnar.Datum, _ compute.FunctionOptions) (columnar.Datum, error) {
		ad := args[0].(*columnar.ArrayDatum)
		ad.Value.Retain()
		return columnar.NewArrayDatum(ad.Value), nil
	})
}

// scalarKernel returns a scalar regardless of input shape.
func scalarKernel() compute.Kernel {
	return compute.KernelFunc(func(context.Context, *compute.ExecCtx, []columnar.Datum, compute.FunctionOptions) (columnar.Datum, error) {
		return columnar.NewDatum(int64(1)), nil
	})
}

func testBatch(t *testing.T) arrow.RecordBatch {
	t.Helper()

	mem := memory.NewGoAllocator()

	ib := array.NewInt64Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int64{1, 2, 3}, nil)
	ints := ib.NewInt64Array()
	defer ints.Release()

	fb := array.NewFloat64Builder(mem)
	defer fb.Release()
	fb.AppendValues([]float64{0.5, 1.5, 2.5}, nil)
	floats := fb.NewFloat64Array()
	defer floats.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "b", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)

	rec := array.NewRecordBatch(schema, []arrow.Array{ints, floats}, 3)
	t.Cleanup(rec.Release)
	return rec
}

func TestApplyColumns(t *testing.T) {
	reg := compute.NewRegistry()
	if err := reg.Register(compute.FuncNegate, identityKernel()); err != nil {
		t.Fatalf("Failed to register kernel: %v", err)
	}
	srv := NewServer(Config{Registry: reg})

	rec := testBatch(t)
	ctx := compute.WithExecCtx(context.Background(), srv.execCtx())

	out, err := srv.applyColumns(ctx, compute.FuncNegate, rec)
	if err != nil {
		t.Fatalf("applyColumns failed: %v", err)
	}
	defer out.Release()

	if out.NumRows() != rec.NumRows() {
		t.Errorf("NumRows = %d, want %d", out.NumRows(), rec.NumRows())
	}
	if out.NumCols() != rec.NumCols() {
		t.Errorf("NumCols = %d, want %d", out.NumCols(), rec.NumCols())
	}
	for i := 0; i < int(out.NumCols()); i++ {
		if out.ColumnName(i) != rec.ColumnName(i) {
			t.Errorf("Column %d name = %q, want %q", i, out.ColumnName(i), rec.ColumnName(i))
		}
		if !arrow.TypeEqual(out.Column(i).DataType(), rec.Column(i).DataType()) {
			t.Errorf("Column %d type = %s, want %s", i, out.Column(i).DataType(), rec.Column(i).DataType())
		}
	}
}

func TestApplyColumnsUnknownFunction(t *testing.T) {
	srv := NewServer(Config{Registry: compute.NewRegistry()})

	rec := testBatch(t)
	ctx := compute.WithExecCtx(context.Background(), srv.execCtx())

	if _, err := srv.applyColumns(ctx, compute.FuncNegate, rec); err == nil {
		t.Error("Expected lookup failure for unregistered function")
	}
}

func TestApplyColumnsNilResult(t *testing.T) {
	reg := compute.NewRegistry()
	err := reg.Register(compute.FuncNegate, compute.KernelFunc(func(context.Context, *compute.ExecCtx, []columnar.Datum, compute.FunctionOptions) (columnar.Datum, error) {
		return nil, nil
	}))
	if err != nil {
		t.Fatalf("Failed to register kernel: %v", err)
	}
	srv := NewServer(Config{Registry: reg})

	rec := testBatch(t)
	ctx := compute.WithExecCtx(context.Background(), srv.execCtx())

	if _, err := srv.applyColumns(ctx, compute.FuncNegate, rec); err == nil {
		t.Error("Expected error for a kernel returning no result")
	}
}

func TestApplyColumnsRejectsScalarResult(t *testing.T) {
	reg := compute.NewRegistry()
	if err := reg.Register(compute.FuncNegate, scalarKernel()); err != nil {
		t.Fatalf("Failed to register kernel: %v", err)
	}
	srv := NewServer(Config{Registry: reg})

	rec := testBatch(t)
	ctx := compute.WithExecCtx(context.Background(), srv.execCtx())

	if _, err := srv.applyColumns(ctx, compute.FuncNegate, rec); err == nil {
		t.Error("Expected error for a scalar kernel result")
	}
}

// cloneFlightData deep-copies a Flight data message. Arrow's flight record
// writer reuses one FlightData struct and body buffer for every payload —
// real gRPC serializes on Send, but an in-memory fake must copy to keep
// earlier messages intact.
func cloneFlightData(d *flight.FlightData) *flight.FlightData {
	c := &flight.FlightData{
		FlightDescriptor: d.FlightDescriptor,
		DataHeader:       append([]byte(nil), d.DataHeader...),
		AppMetadata:      append([]byte(nil), d.AppMetadata...),
		DataBody:         append([]byte(nil), d.DataBody...),
	}
	return c
}

// fakeExchangeStream is a bidirectional DoExchange stream fed from a fixed
// queue of Flight data messages.
type fakeExchangeStream struct {
	grpc.ServerStream
	ctx  context.Context
	in   []*flight.FlightData
	sent []*flight.FlightData
}

func (s *fakeExchangeStream) Context() context.Context { return s.ctx }

func (s *fakeExchangeStream) Send(d *flight.FlightData) error {
	s.sent = append(s.sent, cloneFlightData(d))
	return nil
}

func (s *fakeExchangeStream) Recv() (*flight.FlightData, error) {
	if len(s.in) == 0 {
		return nil, io.EOF
	}
	d := s.in[0]
	s.in = s.in[1:]
	return d, nil
}

// flightDataSink collects the Flight data messages a record writer emits.
type flightDataSink struct {
	data []*flight.FlightData
}

func (s *flightDataSink) Send(d *flight.FlightData) error {
	s.data = append(s.data, cloneFlightData(d))
	return nil
}

// flightDataReplay feeds collected Flight data messages to a record reader.
type flightDataReplay struct {
	data []*flight.FlightData
}

func (r *flightDataReplay) Recv() (*flight.FlightData, error) {
	if len(r.data) == 0 {
		return nil, io.EOF
	}
	d := r.data[0]
	r.data = r.data[1:]
	return d, nil
}

func encodeBatch(t *testing.T, rec arrow.RecordBatch) []*flight.FlightData {
	t.Helper()

	sink := &flightDataSink{}
	w := flight.NewRecordWriter(sink, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		t.Fatalf("Failed to encode batch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}
	return sink.data
}

func exchangeContext(function string) context.Context {
	return metadata.NewIncomingContext(context.Background(),
		metadata.Pairs("compute-function", function))
}

func TestDoExchangeMissingHeader(t *testing.T) {
	srv := NewServer(Config{Registry: compute.NewRegistry()})

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", context.Background()},
		{"no function header", metadata.NewIncomingContext(context.Background(), metadata.MD{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := srv.DoExchange(&fakeExchangeStream{ctx: tt.ctx})
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("Expected InvalidArgument, got: %v", err)
			}
		})
	}
}

func TestDoExchangeNonUnaryFunction(t *testing.T) {
	srv := NewServer(Config{Registry: compute.NewRegistry()})

	stream := &fakeExchangeStream{ctx: exchangeContext("add")}
	err := srv.DoExchange(stream)

	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Expected InvalidArgument for a binary function, got: %v", err)
	}
}

func TestDoExchangeEmptyStream(t *testing.T) {
	reg := compute.NewRegistry()
	if err := reg.Register(compute.FuncNegate, identityKernel()); err != nil {
		t.Fatalf("Failed to register kernel: %v", err)
	}
	srv := NewServer(Config{Registry: reg})

	stream := &fakeExchangeStream{ctx: exchangeContext("negate")}
	if err := srv.DoExchange(stream); err != nil {
		t.Fatalf("Empty stream should succeed, got: %v", err)
	}
	if len(stream.sent) != 0 {
		t.Errorf("Expected no output for an empty stream, got %d messages", len(stream.sent))
	}
}

func TestDoExchangeRoundTrip(t *testing.T) {
	reg := compute.NewRegistry()
	if err := reg.Register(compute.FuncNegate, identityKernel()); err != nil {
		t.Fatalf("Failed to register kernel: %v", err)
	}
	srv := NewServer(Config{Registry: reg})

	rec := testBatch(t)
	stream := &fakeExchangeStream{
		ctx: exchangeContext("negate"),
		in:  encodeBatch(t, rec),
	}

	if err := srv.DoExchange(stream); err != nil {
		t.Fatalf("DoExchange failed: %v", err)
	}
	if len(stream.sent) == 0 {
		t.Fatal("Expected result batches on the stream")
	}

	reader, err := flight.NewRecordReader(&flightDataReplay{data: stream.sent})
	if err != nil {
		t.Fatalf("Failed to read result stream: %v", err)
	}
	defer reader.Release()

	var batches int
	for reader.Next() {
		out := reader.RecordBatch()
		batches++

		if out.NumRows() != rec.NumRows() {
			t.Errorf("NumRows = %d, want %d", out.NumRows(), rec.NumRows())
		}
		if out.NumCols() != rec.NumCols() {
			t.Errorf("NumCols = %d, want %d", out.NumCols(), rec.NumCols())
		}
		for i := 0; i < int(out.NumCols()); i++ {
			if out.ColumnName(i) != rec.ColumnName(i) {
				t.Errorf("Column %d name = %q, want %q", i, out.ColumnName(i), rec.ColumnName(i))
			}
		}
	}
	if err := reader.Err(); err != nil && err != io.EOF {
		t.Fatalf("Result stream failed: %v", err)
	}
	if batches != 1 {
		t.Errorf("Expected 1 result batch, got %d", batches)
	}
}

func TestDoExchangeKernelFailure(t *testing.T) {
	reg := compute.NewRegistry()
	if err := reg.Register(compute.FuncNegate, scalarKernel()); err != nil {
		t.Fatalf("Failed to register kernel: %v", err)
	}
	srv := NewServer(Config{Registry: reg})

	rec := testBatch(t)
	stream := &fakeExchangeStream{
		ctx: exchangeContext("negate"),
		in:  encodeBatch(t, rec),
	}

	err := srv.DoExchange(stream)
	if status.Code(err) != codes.Internal {
		t.Errorf("Expected Internal for a scalar kernel result, got: %v", err)
	}
}
