// Package serialize encodes function-catalog listings for the compute
// service. Listings are MessagePack-encoded and ZStandard-compressed so
// large registries stay cheap to ship in a single Flight result.
package serialize

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// FunctionInfo describes one registry entry in a catalog listing.
type FunctionInfo struct {
	// Name is the registry function name.
	Name string `msgpack:"name"`

	// NArgs is the exact argument count, or the minimum when Variadic.
	NArgs int `msgpack:"n_args"`

	// Variadic indicates the function accepts NArgs or more arguments.
	Variadic bool `msgpack:"variadic,omitempty"`

	// Options names the options record the function binds, if any.
	Options string `msgpack:"options,omitempty"`
}

// Listing is the payload of the list_functions action.
type Listing struct {
	Functions []FunctionInfo `msgpack:"functions"`
}

// Shared codecs, created on first use. EncodeAll/DecodeAll are
// goroutine-safe, so one encoder/decoder pair serves all callers.
var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error

	decoderOnce sync.Once
	decoder     *zstd.Decoder
	decoderErr  error
)

func getEncoder() (*zstd.Encoder, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	return encoder, encoderErr
}

func getDecoder() (*zstd.Decoder, error) {
	decoderOnce.Do(func() {
		decoder, decoderErr = zstd.NewReader(nil)
	})
	return decoder, decoderErr
}

// MarshalListing encodes a catalog listing to compressed bytes.
func MarshalListing(l Listing) ([]byte, error) {
	raw, err := msgpack.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog listing: %w", err)
	}

	enc, err := getEncoder()
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// UnmarshalListing decodes a compressed catalog listing.
func UnmarshalListing(data []byte) (Listing, error) {
	var l Listing

	dec, err := getDecoder()
	if err != nil {
		return l, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return l, fmt.Errorf("failed to decompress catalog listing: %w", err)
	}

	if err := msgpack.Unmarshal(raw, &l); err != nil {
		return l, fmt.Errorf("failed to decode catalog listing: %w", err)
	}
	return l, nil
}
