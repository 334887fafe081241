package formats

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind tells a mesh record apart from a geometry record.
type Kind int

const (
	KindMesh Kind = iota
	KindGeometry
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IdentityField returns the field that names a record of this kind.
func (k Kind) IdentityField() string {
	if k == KindGeometry {
		return FieldID
	}
	return FieldName
}

// DataExtension returns the sidecar file suffix for this kind.
func (k Kind) DataExtension() string {
	if k == KindGeometry {
		return GeometryDataExtension
	}
	return MeshDataExtension
}

// Record field names.
const (
	FieldName            = "name"
	FieldID              = "id"
	FieldCheckCollisions = "checkCollisions"
	FieldGeometryID      = "geometryId"

	FieldPositions       = "positions"
	FieldNormals         = "normals"
	FieldIndices         = "indices"
	FieldUVs             = "uvs"
	FieldUVs2            = "uvs2"
	FieldColors          = "colors"
	FieldMatricesIndices = "matricesIndices"
	FieldMatricesWeights = "matricesWeights"
	FieldSubMeshes       = "subMeshes"

	FieldDelayLoadingFile   = "delayLoadingFile"
	FieldBoundingBoxMinimum = "boundingBoxMinimum"
	FieldBoundingBoxMaximum = "boundingBoxMaximum"
)

// OptionalField is a heavy vertex buffer that leaves a has-marker behind
// once it has been moved to a sidecar file.
type OptionalField struct {
	Name   string
	Marker string
}

var optionalFields = [...]OptionalField{
	{FieldUVs, "hasUVs"},
	{FieldUVs2, "hasUVs2"},
	{FieldColors, "hasColors"},
	{FieldMatricesIndices, "hasMatricesIndices"},
	{FieldMatricesWeights, "hasMatricesWeights"},
}

// OptionalFields returns the optional vertex buffers in payload order.
func OptionalFields() []OptionalField {
	fields := optionalFields
	return fields[:]
}

// FieldState describes how a field appears on a record.
type FieldState int

const (
	FieldAbsent  FieldState = iota // key not in the record
	FieldCleared                   // null
	FieldFalsy                     // false, 0 or ""
	FieldPresent
)

// String returns a human-readable state name.
func (s FieldState) String() string {
	switch s {
	case FieldAbsent:
		return "absent"
	case FieldCleared:
		return "cleared"
	case FieldFalsy:
		return "falsy"
	case FieldPresent:
		return "present"
	default:
		return fmt.Sprintf("FieldState(%d)", int(s))
	}
}

// Field is one member of a record.
type Field struct {
	Name  string
	State FieldState
	value gjson.Result
}

// Exists reports whether the key is in the record at all.
func (f Field) Exists() bool {
	return f.State != FieldAbsent
}

// Present reports whether the field holds a truthy value. Arrays and objects
// are present even when empty.
func (f Field) Present() bool {
	return f.State == FieldPresent
}

// Raw returns the field's JSON text.
func (f Field) Raw() string {
	return f.value.Raw
}

// IsArray reports whether the field holds a JSON array.
func (f Field) IsArray() bool {
	return f.value.IsArray()
}

// Values returns the elements of an array field.
func (f Field) Values() []gjson.Result {
	return f.value.Array()
}

func fieldState(v gjson.Result) FieldState {
	if !v.Exists() {
		return FieldAbsent
	}
	switch v.Type {
	case gjson.Null:
		return FieldCleared
	case gjson.False:
		return FieldFalsy
	case gjson.Number:
		if v.Num == 0 || v.Num != v.Num {
			return FieldFalsy
		}
	case gjson.String:
		if v.Str == "" {
			return FieldFalsy
		}
	}
	return FieldPresent
}

// Record is a mesh or geometry entry of a scene, held as compact JSON.
type Record struct {
	kind Kind
	data []byte
}

// NewRecord wraps the JSON text of one mesh or geometry entry.
func NewRecord(kind Kind, data []byte) *Record {
	return &Record{kind: kind, data: data}
}

// Kind returns whether this is a mesh or a geometry.
func (r *Record) Kind() Kind {
	return r.kind
}

// Field looks up a field by name.
func (r *Record) Field(name string) Field {
	v := gjson.GetBytes(r.data, name)
	return Field{Name: name, State: fieldState(v), value: v}
}

// Identity returns the mesh name or geometry id.
func (r *Record) Identity() string {
	return gjson.GetBytes(r.data, r.kind.IdentityField()).String()
}

// HasIdentity reports whether the mesh name or geometry id holds a string.
// The empty string counts.
func (r *Record) HasIdentity() bool {
	return gjson.GetBytes(r.data, r.kind.IdentityField()).Type == gjson.String
}

// Extractable reports whether positions, normals and indices are all present.
func (r *Record) Extractable() bool {
	return r.Field(FieldPositions).Present() &&
		r.Field(FieldNormals).Present() &&
		r.Field(FieldIndices).Present()
}

// CheckCollisions reports whether the mesh takes part in collisions.
func (r *Record) CheckCollisions() bool {
	return r.Field(FieldCheckCollisions).Present()
}

// GeometryID returns the geometry a mesh points at, or "" when unset.
func (r *Record) GeometryID() string {
	f := r.Field(FieldGeometryID)
	if !f.Present() {
		return ""
	}
	return f.value.String()
}

// Set encodes value and stores it under name.
func (r *Record) Set(name string, value any) error {
	data, err := sjson.SetBytes(r.data, name, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	r.data = data
	return nil
}

// SetRaw stores pre-encoded JSON under name.
func (r *Record) SetRaw(name string, raw []byte) error {
	data, err := sjson.SetRawBytes(r.data, name, raw)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	r.data = data
	return nil
}

// Clear replaces a field with null, keeping its position in the record.
func (r *Record) Clear(name string) error {
	return r.SetRaw(name, []byte("null"))
}

// Bytes returns the record's JSON text.
func (r *Record) Bytes() []byte {
	return r.data
}
