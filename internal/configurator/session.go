package configurator

import (
	"strings"

	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/pkg/enums"
)

// ItemSink receives the finished selection when a session commits.
// *batch.Batch satisfies it.
type ItemSink interface {
	Accept(product catalog.Product, sel Selection) error
}

// MediaToggle reports the outcome of SelectMedia.
type MediaToggle struct {
	Ref      int  `json:"media_ref"`
	Selected bool `json:"selected"`
	Count    int  `json:"count"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	Product      catalog.Product
	Step         enums.ConfigStep
	StepIndex    int
	Selection    Selection
	PricePreview int64
	Open         bool
}

// Session walks one product through the configuration wizard.
// A Session is not safe for concurrent use; callers serialize access.
// Every method that returns an error leaves the session unchanged.
type Session struct {
	product   catalog.Product
	step      enums.ConfigStep
	selection Selection
	closed    bool
}

// NewSession opens a session at the first step. Out-of-stock products are refused.
func NewSession(product catalog.Product) (*Session, error) {
	if !product.Stock.Orderable() {
		return nil, ErrProductUnavailable.WithDetails(map[string]any{
			"reason":     "out of stock",
			"product_id": product.ID,
		})
	}
	if product.UnitPrice < 0 || product.UnitPrice > catalog.MaxUnitPrice {
		return nil, ErrInvalidOption.WithDetails(map[string]any{
			"reason":     "unit price outside listing limit",
			"product_id": product.ID,
		})
	}
	return &Session{
		product:   product,
		step:      enums.ConfigStepMediaSelection,
		selection: NewSelection(),
	}, nil
}

func (s *Session) Product() catalog.Product { return s.product }

func (s *Session) Step() enums.ConfigStep { return s.step }

func (s *Session) IsOpen() bool { return !s.closed }

// Selection returns a copy of the current choices.
func (s *Session) Selection() Selection { return s.selection.Clone() }

// SelectMedia toggles ref in the selection. Adding a sixth photo is rejected.
func (s *Session) SelectMedia(ref int) (MediaToggle, error) {
	if s.closed {
		return MediaToggle{}, ErrSessionClosed
	}
	if ref < 0 || ref >= MediaLibrarySize {
		return MediaToggle{}, ErrMediaOutOfRange.WithDetails(map[string]any{
			"reason":    "out of range",
			"media_ref": ref,
		})
	}

	if idx := s.selection.mediaIndex(ref); idx >= 0 {
		refs := s.selection.MediaRefs
		s.selection.MediaRefs = append(refs[:idx:idx], refs[idx+1:]...)
		return MediaToggle{Ref: ref, Selected: false, Count: len(s.selection.MediaRefs)}, nil
	}
	if len(s.selection.MediaRefs) >= MediaCap {
		return MediaToggle{}, ErrMediaCapReached.WithDetails(map[string]any{
			"reason": "cap reached",
			"cap":    MediaCap,
		})
	}
	s.selection.MediaRefs = append(s.selection.MediaRefs, ref)
	return MediaToggle{Ref: ref, Selected: true, Count: len(s.selection.MediaRefs)}, nil
}

// SetStyle assigns the bud style; the zero value clears it.
func (s *Session) SetStyle(v enums.BudStyle) error {
	if s.closed {
		return ErrSessionClosed
	}
	if v == "" {
		s.selection.Style = nil
		return nil
	}
	if !v.IsValid() {
		return invalidOption("style", v.String())
	}
	s.selection.Style = &v
	return nil
}

// SetTheme assigns the background theme; the zero value clears it.
func (s *Session) SetTheme(v enums.BackgroundTheme) error {
	if s.closed {
		return ErrSessionClosed
	}
	if v == "" {
		s.selection.Theme = nil
		return nil
	}
	if !v.IsValid() {
		return invalidOption("theme", v.String())
	}
	s.selection.Theme = &v
	return nil
}

// SetTypography assigns the label font; the zero value clears it.
func (s *Session) SetTypography(v enums.Typography) error {
	if s.closed {
		return ErrSessionClosed
	}
	if v == "" {
		s.selection.Typography = nil
		return nil
	}
	if !v.IsValid() {
		return invalidOption("typography", v.String())
	}
	s.selection.Typography = &v
	return nil
}

// SetPackaging assigns the packaging format; the zero value clears it.
func (s *Session) SetPackaging(v enums.PackagingFormat) error {
	if s.closed {
		return ErrSessionClosed
	}
	if v == "" {
		s.selection.Packaging = nil
		return nil
	}
	if !v.IsValid() {
		return invalidOption("packaging", v.String())
	}
	s.selection.Packaging = &v
	return nil
}

// SetQuantity stores n, clamped to [MinQuantity, MaxQuantity].
func (s *Session) SetQuantity(n int) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.selection.Quantity = clampQuantity(n)
	return nil
}

// IncrementQuantity adds one bag. At MaxQuantity it fails with ErrQuantityLimit.
func (s *Session) IncrementQuantity() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.selection.Quantity >= MaxQuantity {
		return ErrQuantityLimit
	}
	s.selection.Quantity++
	return nil
}

func (s *Session) DecrementQuantity() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.selection.Quantity = clampQuantity(s.selection.Quantity - 1)
	return nil
}

// SetResellerMark records the uploaded reseller identity; an empty ref clears it.
func (s *Session) SetResellerMark(ref string) error {
	if s.closed {
		return ErrSessionClosed
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		s.selection.ResellerMarkRef = nil
		return nil
	}
	s.selection.ResellerMarkRef = &ref
	return nil
}

// Advance moves to the next step if the current step's guard passes.
func (s *Session) Advance() (enums.ConfigStep, error) {
	if s.closed {
		return s.step, ErrSessionClosed
	}
	t := transitions[s.step]
	if t.terminal {
		return s.step, ErrTerminalStep
	}
	if err := t.guard(s.selection); err != nil {
		return s.step, err
	}
	s.step = t.next
	return s.step, nil
}

// Retreat moves back one step. It is a no-op on the first step.
func (s *Session) Retreat() (enums.ConfigStep, error) {
	if s.closed {
		return s.step, ErrSessionClosed
	}
	s.step = transitions[s.step].prev
	return s.step, nil
}

// Commit hands the selection to sink and closes the session.
// Only the review step may commit; the sink is not touched otherwise.
func (s *Session) Commit(sink ItemSink) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.step != enums.ConfigStepReviewAndConfirm {
		return ErrCommitNotAllowed.WithDetails(map[string]any{
			"reason": "wrong step",
			"step":   s.step.String(),
		})
	}
	if err := sink.Accept(s.product, s.selection.Clone()); err != nil {
		return err
	}
	s.closed = true
	return nil
}

// Abandon closes the session without producing an item.
func (s *Session) Abandon() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	return nil
}

// PricePreview is unit price times quantity, computed on every call.
func (s *Session) PricePreview() int64 {
	return s.product.UnitPrice * int64(s.selection.Quantity)
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Product:      s.product,
		Step:         s.step,
		StepIndex:    s.step.Index(),
		Selection:    s.selection.Clone(),
		PricePreview: s.PricePreview(),
		Open:         !s.closed,
	}
}
