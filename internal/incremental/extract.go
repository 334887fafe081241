package incremental

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/babylon-incremental/internal/logger"
	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// Extractor moves the heavy fields of a record into a sidecar file.
type Extractor struct {
	Basename string // scene file name without extension
	Sink     Sink
}

// Extract writes payload as rec's sidecar and rewrites rec to reference it.
// It returns the delayLoadingFile value, or "" when rec lacks positions,
// normals or indices, in which case rec is not touched.
func (e *Extractor) Extract(rec *formats.Record, payload []byte) (string, error) {
	if !rec.Extractable() {
		return "", nil
	}
	if !rec.HasIdentity() {
		return "", fmt.Errorf("%w: %s has no string %s", ErrMissingIdentity, rec.Kind(), rec.Kind().IdentityField())
	}

	box, err := BoundingBox(rec)
	if err != nil {
		return "", err
	}

	identity := rec.Identity()
	name := SidecarName(e.Basename, rec.Kind(), identity)
	logger.Info("extracting", zap.Stringer("kind", rec.Kind()), zap.String("name", identity))

	if err := e.Sink.WriteFile(name, payload); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	ref := EncodeURIComponent(bareName(name))
	logger.Debug("delay loading file", zap.String("name", identity), zap.String("file", ref))

	if err := rec.Set(formats.FieldDelayLoadingFile, ref); err != nil {
		return "", err
	}
	minimum, maximum := box.Min.Array(), box.Max.Array()
	if err := rec.SetRaw(formats.FieldBoundingBoxMinimum, formats.NumberArray(minimum[:]...)); err != nil {
		return "", err
	}
	if err := rec.SetRaw(formats.FieldBoundingBoxMaximum, formats.NumberArray(maximum[:]...)); err != nil {
		return "", err
	}

	for _, field := range []string{formats.FieldPositions, formats.FieldNormals, formats.FieldIndices} {
		if err := rec.Clear(field); err != nil {
			return "", err
		}
	}

	for _, opt := range formats.OptionalFields() {
		if !rec.Field(opt.Name).Present() {
			continue
		}
		if err := rec.Set(opt.Marker, true); err != nil {
			return "", err
		}
		if err := rec.Clear(opt.Name); err != nil {
			return "", err
		}
	}

	// subMeshes moves to the sidecar without a hasSubMeshes marker.
	if rec.Kind() == formats.KindMesh && rec.Field(formats.FieldSubMeshes).Present() {
		if err := rec.Clear(formats.FieldSubMeshes); err != nil {
			return "", err
		}
	}

	return ref, nil
}

// bareName drops any directory part an identity smuggled into name.
func bareName(name string) string {
	if i := strings.LastIndexByte(name, filepath.Separator); i >= 0 {
		return name[i+1:]
	}
	return name
}
