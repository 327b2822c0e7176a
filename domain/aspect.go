package domain

import (
	"fmt"
	"math"
)

// namedHeights maps symbolic size names to pixel heights.
var namedHeights = map[string]int{
	"tiny":          64,
	"small":         120,
	"medium":        240,
	"large":         800,
	"x_large":       1024,
	"avatar_small":  32,
	"avatar_medium": 64,
	"avatar_large":  128,
}

// Size is either an explicit pixel height or a named entry in the fixed
// size table.
type Size struct {
	name string
	px   int
}

// SizePx wraps an explicit pixel height.
func SizePx(px int) Size { return Size{px: px} }

// SizeNamed wraps a symbolic size name resolved against the fixed table.
func SizeNamed(name string) Size { return Size{name: name} }

// Height resolves the size to pixels. Explicit pixel values pass through
// unchanged; unknown names are ErrUnknownSize.
func (s Size) Height() (int, error) {
	if s.name == "" {
		return s.px, nil
	}
	px, ok := namedHeights[s.name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSize, s.name)
	}
	return px, nil
}

// Aspect is a target width:height ratio. Original keeps the source ratio
// and lets the proxy infer the width.
type Aspect struct {
	W        int
	H        int
	Original bool
}

var (
	// AspectSquare is the ratio (1,1).
	AspectSquare = Aspect{W: 1, H: 1}
	// AspectOriginal resolves the width to the 0 sentinel, meaning the
	// proxy infers it from the source.
	AspectOriginal = Aspect{Original: true}
)

// AspectRatio builds an arbitrary width:height ratio.
func AspectRatio(w, h int) Aspect { return Aspect{W: w, H: h} }

// Apply resolves the size to a pixel height and derives the target width
// from the ratio. Equal numerator and denominator short-circuit to a
// square; otherwise the width rounds half away from zero so identical
// inputs always resolve to identical dimensions.
func (a Aspect) Apply(size Size) (width, height int, err error) {
	height, err = size.Height()
	if err != nil {
		return 0, 0, err
	}
	if a.Original {
		return 0, height, nil
	}
	if a.W == a.H {
		return height, height, nil
	}
	width = int(math.Round(float64(height) * float64(a.W) / float64(a.H)))
	return width, height, nil
}
