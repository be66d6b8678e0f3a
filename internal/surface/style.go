package surface

// ScrollMode controls whether a surface responds to scroll input.
type ScrollMode int

const (
	// ScrollAuto lets the surface scroll freely.
	ScrollAuto ScrollMode = iota
	// ScrollHidden suppresses all scroll input.
	ScrollHidden
)

// String returns a human-readable name for a scroll mode.
func (m ScrollMode) String() string {
	switch m {
	case ScrollAuto:
		return "auto"
	case ScrollHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Anchor controls how a surface is positioned relative to its container.
type Anchor int

const (
	// AnchorFlow positions the surface in normal layout flow.
	AnchorFlow Anchor = iota
	// AnchorPinned takes the surface out of flow and pins it at TopOffset.
	AnchorPinned
)

// String returns a human-readable name for an anchor mode.
func (a Anchor) String() string {
	switch a {
	case AnchorFlow:
		return "flow"
	case AnchorPinned:
		return "pinned"
	default:
		return "unknown"
	}
}

// Style is the externally observable appearance of a surface: the five
// attributes the lock manager saves, mutates and restores.
type Style struct {
	Scroll    ScrollMode
	Anchor    Anchor
	TopOffset int // rows; negative values shift content up
	Width     int // columns; 0 means natural width
	Height    int // rows; 0 means natural height
}

// Suppressed returns the style a locked surface must carry, derived from its
// baseline style and the scroll offset at lock time. Hiding scroll alone is
// not enough: without pinning plus the negative top offset the content jumps
// back to the top and the viewport loses its visual position, so the full
// combination is applied as one unit.
func Suppressed(baseline Style, scrollOffset int) Style {
	s := baseline
	s.Scroll = ScrollHidden
	s.Anchor = AnchorPinned
	s.TopOffset = -scrollOffset
	return s
}
