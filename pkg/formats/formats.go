// Package formats reads and rewrites Babylon scene files (.babylon) and the
// sidecar data files that incremental scenes point at.
package formats
