package columnar

import (
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// GeometryType implements the Arrow extension type for geospatial values.
// Geometries are stored as WKB (Well-Known Binary) in Binary columns, so
// geometry datums flow through set-membership and comparison dispatch the
// same way any binary column does. Uses "geoarrow.wkb" for compatibility
// with GeoArrow and DuckDB spatial.
type GeometryType struct {
	arrow.ExtensionBase
}

// NewGeometryType creates a geometry extension type over Binary storage.
func NewGeometryType() *GeometryType {
	return &GeometryType{
		ExtensionBase: arrow.ExtensionBase{
			Storage: arrow.BinaryTypes.Binary,
		},
	}
}

// ArrayType returns the Go array type backing geometry columns.
func (g *GeometryType) ArrayType() reflect.Type {
	return reflect.TypeOf((*array.Binary)(nil))
}

// ExtensionName returns the extension type identifier.
func (g *GeometryType) ExtensionName() string {
	return "geoarrow.wkb"
}

// String returns a string representation of the type.
func (g *GeometryType) String() string {
	return "extension<geoarrow.wkb>"
}

// Serialize returns the extension metadata (empty for plain WKB).
func (g *GeometryType) Serialize() string {
	return ""
}

// Deserialize creates a geometry extension type from metadata.
func (g *GeometryType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.BinaryTypes.Binary) &&
		!arrow.TypeEqual(storageType, arrow.BinaryTypes.LargeBinary) {
		return nil, fmt.Errorf("invalid storage type for geometry: %s (expected Binary or LargeBinary)", storageType)
	}
	return &GeometryType{
		ExtensionBase: arrow.ExtensionBase{Storage: storageType},
	}, nil
}

// ExtensionEquals checks equality with another extension type.
func (g *GeometryType) ExtensionEquals(other arrow.ExtensionType) bool {
	otherGeom, ok := other.(*GeometryType)
	if !ok {
		return false
	}
	return arrow.TypeEqual(g.StorageType(), otherGeom.StorageType())
}

// MarshalWKB encodes a geometry to WKB bytes.
func MarshalWKB(g orb.Geometry) ([]byte, error) {
	data, err := wkb.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode geometry to WKB: %w", err)
	}
	return data, nil
}

// UnmarshalWKB decodes WKB bytes into a geometry.
func UnmarshalWKB(data []byte) (orb.Geometry, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode WKB geometry: %w", err)
	}
	return g, nil
}

// NewGeometryScalar wraps a geometry as a binary scalar datum holding its
// WKB encoding.
func NewGeometryScalar(g orb.Geometry) (Datum, error) {
	data, err := MarshalWKB(g)
	if err != nil {
		return nil, err
	}
	s := scalar.NewBinaryScalar(memory.NewBufferBytes(data), arrow.BinaryTypes.Binary)
	return NewScalarDatum(s), nil
}

// RegisterGeometryExtension registers the geometry extension type with
// Arrow so geometry columns keep their extension metadata through IPC
// round trips. Called once during package initialization.
func RegisterGeometryExtension() {
	_ = arrow.RegisterExtensionType(NewGeometryType())
}

func init() {
	RegisterGeometryExtension()
}

// GeometryFromScalar decodes a geometry from a binary scalar datum
// produced by NewGeometryScalar or read from a WKB column.
func GeometryFromScalar(d Datum) (orb.Geometry, error) {
	sd, ok := d.(*ScalarDatum)
	if !ok {
		return nil, fmt.Errorf("geometry datum must be a scalar, got %s", d.Kind())
	}
	bs, ok := sd.Value.(*scalar.Binary)
	if !ok {
		return nil, fmt.Errorf("geometry scalar must be binary, got %s", sd.Value.DataType())
	}
	return UnmarshalWKB(bs.Data())
}
