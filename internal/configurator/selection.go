package configurator

import "github.com/angelmondragon/bcf-portal/pkg/enums"

const (
	// MediaLibrarySize is the number of marketing photos offered; refs run 0..MediaLibrarySize-1.
	MediaLibrarySize = 10
	// MediaCap is the most photos a single configuration may carry.
	MediaCap = 5
	// MinQuantity is the floor applied to every quantity write.
	MinQuantity = 1
	// MaxQuantity is the most bags one configuration can order; quantity writes clamp to it.
	MaxQuantity = 10_000
)

// Selection accumulates a buyer's choices for one product.
// Nil pointers mean the choice was never made.
type Selection struct {
	MediaRefs       []int
	Style           *enums.BudStyle
	Theme           *enums.BackgroundTheme
	Typography      *enums.Typography
	Packaging       *enums.PackagingFormat
	Quantity        int
	ResellerMarkRef *string
}

// NewSelection returns the initial selection: no media, nothing chosen, quantity 1.
func NewSelection() Selection {
	return Selection{MediaRefs: []int{}, Quantity: MinQuantity}
}

// Clone deep-copies the selection so callers cannot reach into session state.
func (s Selection) Clone() Selection {
	out := s
	out.MediaRefs = append(make([]int, 0, len(s.MediaRefs)), s.MediaRefs...)
	if s.Style != nil {
		v := *s.Style
		out.Style = &v
	}
	if s.Theme != nil {
		v := *s.Theme
		out.Theme = &v
	}
	if s.Typography != nil {
		v := *s.Typography
		out.Typography = &v
	}
	if s.Packaging != nil {
		v := *s.Packaging
		out.Packaging = &v
	}
	if s.ResellerMarkRef != nil {
		v := *s.ResellerMarkRef
		out.ResellerMarkRef = &v
	}
	return out
}

// HasMedia reports whether ref is currently selected.
func (s Selection) HasMedia(ref int) bool {
	return s.mediaIndex(ref) >= 0
}

func (s Selection) mediaIndex(ref int) int {
	for i, existing := range s.MediaRefs {
		if existing == ref {
			return i
		}
	}
	return -1
}

func clampQuantity(n int) int {
	switch {
	case n < MinQuantity:
		return MinQuantity
	case n > MaxQuantity:
		return MaxQuantity
	}
	return n
}
