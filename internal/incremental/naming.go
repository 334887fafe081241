package incremental

import (
	"net/url"
	"strings"

	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// SanitizeIdentity makes a mesh name or geometry id usable in a file name.
// Only the first '+' and the first space are replaced; later ones are kept.
func SanitizeIdentity(id string) string {
	id = strings.Replace(id, "+", "_", 1)
	return strings.Replace(id, " ", "_", 1)
}

// SidecarName returns the sidecar file name for a record of a scene.
func SidecarName(basename string, kind formats.Kind, identity string) string {
	return basename + "." + SanitizeIdentity(identity) + kind.DataExtension()
}

// ShellName returns the file name of the incremental scene for basename.
func ShellName(basename string) string {
	return basename + formats.IncrementalPart + formats.BabylonExtension
}

// SceneBasename strips the final extension from a scene file name.
func SceneBasename(file string) string {
	if i := strings.LastIndexByte(file, '.'); i >= 0 {
		return file[:i]
	}
	return file
}

var uriComponentFixes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s, leaving A-Z a-z 0-9 and -_.!~*'()
// as they are, matching JavaScript's encodeURIComponent.
func EncodeURIComponent(s string) string {
	return uriComponentFixes.Replace(url.QueryEscape(s))
}
