package incremental

import (
	"fmt"

	"github.com/Faultbox/babylon-incremental/pkg/formats"
	"github.com/Faultbox/babylon-incremental/pkg/math"
)

// BoundingBox computes the axis-aligned box of a record's positions. Tokens
// may be numbers or numeric strings; anything else is ErrInvalidPosition.
func BoundingBox(rec *formats.Record) (math.Box, error) {
	positions := rec.Field(formats.FieldPositions)
	if !positions.IsArray() {
		return math.Box{}, fmt.Errorf("%w: %s %q: positions is not an array",
			ErrInvalidPosition, rec.Kind(), rec.Identity())
	}

	tokens := positions.Values()
	coords := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, ok := formats.ParseNumberToken(tok)
		if !ok {
			return math.Box{}, fmt.Errorf("%w: %s %q: positions[%d] = %s",
				ErrInvalidPosition, rec.Kind(), rec.Identity(), i, tok.Raw)
		}
		coords[i] = v
	}

	return math.BoxFromFlat(coords), nil
}
