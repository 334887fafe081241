// Package incremental turns Babylon scene exports into incremental scenes:
// a light shell document plus one sidecar file per mesh or geometry.
package incremental

import (
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/Faultbox/babylon-incremental/internal/logger"
	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// Extraction errors.
var (
	ErrInvalidPosition = errors.New("invalid position data")
	ErrMissingIdentity = errors.New("record has no identity")
)

// Options controls which records are extracted.
type Options struct {
	ExcludedMeshes []*regexp.Regexp // matched against mesh names only
	MinMeshSize    int              // payloads of this many bytes or fewer stay inline; 0 disables
}

// Stats counts what happened to the records of one scene.
type Stats struct {
	MeshesExtracted     int
	GeometriesExtracted int
	Excluded            int
	BelowThreshold      int
	CollisionPinned     int
	SidecarBytes        int64
}

// Walker decides which records of a scene are extracted.
type Walker struct {
	opts Options
}

// NewWalker creates a walker.
func NewWalker(opts Options) *Walker {
	return &Walker{opts: opts}
}

// Process rewrites scene in place, sending one sidecar per extracted record
// to sink. The caller owns sink and must Wait on it before trusting that the
// sidecars exist.
func (w *Walker) Process(scene *formats.Babylon, basename string, sink Sink) (Stats, error) {
	var stats Stats

	if err := scene.SetFlag(formats.FlagAutoClear, true); err != nil {
		return stats, err
	}
	if err := scene.SetFlag(formats.FlagUseDelayedTextureLoading, true); err != nil {
		return stats, err
	}

	ex := &Extractor{Basename: basename, Sink: sink}

	// Geometries used by collision meshes must load with the scene. This set
	// is complete before the geometry pass starts.
	doNotDelay := make(map[string]struct{})

	meshes := scene.Meshes()
	for _, mesh := range meshes {
		if w.excluded(mesh.Identity()) {
			stats.Excluded++
			continue
		}

		payload, ok, err := w.candidate(mesh, &stats)
		if err != nil {
			return stats, err
		}
		if !ok {
			continue
		}

		if mesh.CheckCollisions() {
			if id := mesh.GeometryID(); id != "" {
				doNotDelay[id] = struct{}{}
			}
			stats.CollisionPinned++
			continue
		}

		ref, err := ex.Extract(mesh, payload)
		if err != nil {
			return stats, err
		}
		if ref != "" {
			stats.MeshesExtracted++
			stats.SidecarBytes += int64(len(payload))
		}
	}
	if err := scene.SetMeshes(meshes); err != nil {
		return stats, err
	}

	geometries, ok := scene.Geometries()
	if !ok {
		return stats, nil
	}
	for _, geometry := range geometries {
		if _, pinned := doNotDelay[geometry.Identity()]; pinned {
			continue
		}

		payload, ok, err := w.candidate(geometry, &stats)
		if err != nil {
			return stats, err
		}
		if !ok {
			continue
		}

		ref, err := ex.Extract(geometry, payload)
		if err != nil {
			return stats, err
		}
		if ref != "" {
			stats.GeometriesExtracted++
			stats.SidecarBytes += int64(len(payload))
		}
	}
	return stats, scene.SetGeometries(geometries)
}

func (w *Walker) excluded(name string) bool {
	for _, re := range w.opts.ExcludedMeshes {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// candidate builds the payload rec would be extracted with and applies the
// size threshold to it. The threshold is exclusive: a payload exactly
// MinMeshSize bytes long stays inline.
func (w *Walker) candidate(rec *formats.Record, stats *Stats) ([]byte, bool, error) {
	payload, err := BuildPayload(rec)
	if err != nil {
		return nil, false, err
	}
	if w.opts.MinMeshSize > 0 && len(payload) <= w.opts.MinMeshSize {
		logger.Info("skipping record below minimum size",
			zap.Stringer("kind", rec.Kind()),
			zap.String("name", rec.Identity()),
			zap.Int("size", len(payload)),
			zap.Int("min_mesh_size", w.opts.MinMeshSize),
		)
		stats.BelowThreshold++
		return nil, false, nil
	}
	return payload, true, nil
}
