package preview

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlacement is returned for an unrecognized placement name.
var ErrInvalidPlacement = errors.New("invalid placement")

// Placement anchors toasts to a corner or edge of the viewport. It belongs
// to the provider scope, never to a single toast.
type Placement string

// Supported placements.
const (
	TopLeft      Placement = "top left"
	TopCenter    Placement = "top center"
	TopRight     Placement = "top right"
	BottomLeft   Placement = "bottom left"
	BottomCenter Placement = "bottom center"
	BottomRight  Placement = "bottom right"
)

// DefaultPlacement is used when no placement is configured.
const DefaultPlacement = BottomRight

// Placements lists every supported placement.
func Placements() []Placement {
	return []Placement{TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight}
}

// ParsePlacement accepts "bottom right", "bottom-right", or "BottomRight"
// style spellings.
func ParsePlacement(s string) (Placement, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")
	if !strings.Contains(norm, " ") {
		for _, v := range []string{"top", "bottom"} {
			if rest, ok := strings.CutPrefix(norm, v); ok && rest != "" {
				norm = v + " " + rest
			}
		}
	}
	for _, p := range Placements() {
		if string(p) == norm {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
}

// Top reports whether toasts stack from the top edge.
func (p Placement) Top() bool {
	return strings.HasPrefix(string(p), "top")
}

// Horizontal returns "left", "center", or "right".
func (p Placement) Horizontal() string {
	if _, h, ok := strings.Cut(string(p), " "); ok {
		return h
	}
	return "right"
}
