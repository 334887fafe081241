package incremental

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// BuildPayload encodes the heavy fields of rec as the compact sidecar
// document. Positions, indices and normals are copied whenever the key
// exists; optional buffers only when present; subMeshes only for meshes.
func BuildPayload(rec *formats.Record) ([]byte, error) {
	payload := []byte("{}")

	add := func(f formats.Field) error {
		var err error
		payload, err = sjson.SetRawBytes(payload, f.Name, []byte(f.Raw()))
		if err != nil {
			return fmt.Errorf("building payload field %s: %w", f.Name, err)
		}
		return nil
	}

	for _, name := range []string{formats.FieldPositions, formats.FieldIndices, formats.FieldNormals} {
		if f := rec.Field(name); f.Exists() {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}

	for _, opt := range formats.OptionalFields() {
		if f := rec.Field(opt.Name); f.Present() {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}

	if rec.Kind() == formats.KindMesh {
		if f := rec.Field(formats.FieldSubMeshes); f.Present() {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}

	return payload, nil
}
