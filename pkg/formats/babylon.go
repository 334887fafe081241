package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Babylon scene errors.
var (
	ErrInvalidBabylon = errors.New("invalid babylon document")
	ErrMissingMeshes  = errors.New("babylon document has no meshes array")
)

// File naming used by incremental exports.
const (
	BabylonExtension      = ".babylon"
	IncrementalPart       = ".incremental"
	MeshDataExtension     = ".babylonmeshdata"
	GeometryDataExtension = ".babylongeometrydata"
)

// Scene-level paths touched by the incremental export.
const (
	pathMeshes     = "meshes"
	pathVertexData = "geometries.vertexData"

	FlagAutoClear                = "autoClear"
	FlagUseDelayedTextureLoading = "useDelayedTextureLoading"
)

// Babylon is a scene document held as compact JSON.
//
// Only the fields an incremental export touches are interpreted. Everything
// else is carried through byte for byte, in its source key order.
type Babylon struct {
	data []byte
}

// ParseBabylon decodes a .babylon scene document.
func ParseBabylon(data []byte) (*Babylon, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidBabylon)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: root is not an object", ErrInvalidBabylon)
	}
	if !root.Get(pathMeshes).IsArray() {
		return nil, ErrMissingMeshes
	}
	return &Babylon{data: Compact(data)}, nil
}

// ParseBabylonFile reads and decodes a .babylon file from disk.
func ParseBabylonFile(path string) (*Babylon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading babylon file: %w", err)
	}
	return ParseBabylon(data)
}

// Compact strips insignificant whitespace from a JSON document.
func Compact(data []byte) []byte {
	return pretty.Ugly(data)
}

// Meshes returns a copy of every record in the meshes array.
func (b *Babylon) Meshes() []*Record {
	return b.records(pathMeshes, KindMesh)
}

// Geometries returns the records under geometries.vertexData. The second
// result is false when the scene has no vertex data list.
func (b *Babylon) Geometries() ([]*Record, bool) {
	if !gjson.GetBytes(b.data, pathVertexData).IsArray() {
		return nil, false
	}
	return b.records(pathVertexData, KindGeometry), true
}

func (b *Babylon) records(path string, kind Kind) []*Record {
	var recs []*Record
	gjson.GetBytes(b.data, path).ForEach(func(_, value gjson.Result) bool {
		recs = append(recs, NewRecord(kind, []byte(value.Raw)))
		return true
	})
	return recs
}

// SetMeshes replaces the meshes array.
func (b *Babylon) SetMeshes(recs []*Record) error {
	return b.setRecords(pathMeshes, recs)
}

// SetGeometries replaces geometries.vertexData.
func (b *Babylon) SetGeometries(recs []*Record) error {
	return b.setRecords(pathVertexData, recs)
}

func (b *Babylon) setRecords(path string, recs []*Record) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range recs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(rec.Bytes())
	}
	buf.WriteByte(']')

	data, err := sjson.SetRawBytes(b.data, path, buf.Bytes())
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	b.data = data
	return nil
}

// SetFlag sets a top-level boolean field.
func (b *Babylon) SetFlag(name string, value bool) error {
	data, err := sjson.SetBytes(b.data, name, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	b.data = data
	return nil
}

// Bytes returns the compact encoding of the scene.
func (b *Babylon) Bytes() []byte {
	return b.data
}
