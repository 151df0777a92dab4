package workflow

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angelmondragon/bcf-portal/internal/batch"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/pkg/enums"
	"github.com/angelmondragon/bcf-portal/pkg/metrics"
	"github.com/google/uuid"
)

// SelectionPatch carries the fields of a partial selection update. Nil fields
// are left alone; a pointer to the zero value clears the choice.
type SelectionPatch struct {
	Style        *enums.BudStyle
	Theme        *enums.BackgroundTheme
	Typography   *enums.Typography
	Packaging    *enums.PackagingFormat
	Quantity     *int
	QuantityStep int
	ResellerMark *string
}

// BatchView is a read-only copy of a workspace's draft batch.
type BatchView struct {
	Items         []batch.ConfiguredItem
	Total         int64
	ExtendedTotal int64
}

// Workspace holds one owner's session, batch and history handle. All methods
// are serialized on the workspace mutex.
type Workspace struct {
	mu    sync.Mutex
	owner string
	deps  *Deps

	session    *configurator.Session
	sessionSeq uint64
	// annotationSeq numbers dispatches; only the latest may deliver.
	annotationSeq uint64
	annotation    string
	batch         *batch.Batch
	lastActive    atomic.Int64
}

func newWorkspace(owner string, deps *Deps) *Workspace {
	w := &Workspace{
		owner: owner,
		deps:  deps,
		batch: batch.New(deps.Clock),
	}
	w.touch()
	return w
}

func (w *Workspace) Owner() string { return w.owner }

// StartConfiguration opens a session for productID. Only one session may be open.
func (w *Workspace) StartConfiguration(ctx context.Context, productID int64) (configurator.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session != nil && w.session.IsOpen() {
		return configurator.Snapshot{}, ErrSessionOpen
	}
	product, err := w.deps.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return configurator.Snapshot{}, err
	}
	session, err := configurator.NewSession(product)
	if err != nil {
		return configurator.Snapshot{}, err
	}

	w.session = session
	w.sessionSeq++
	w.annotation = ""
	w.deps.Metrics.SessionStarted()
	w.annotate(ctx)
	return session.Snapshot(), nil
}

// Session returns a snapshot of the open session.
func (w *Workspace) Session() (configurator.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session == nil {
		return configurator.Snapshot{}, ErrNoSession
	}
	return w.session.Snapshot(), nil
}

// Annotation returns the latest generated copy for the open session, if any.
func (w *Workspace) Annotation() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.annotation
}

func (w *Workspace) SelectMedia(ref int) (configurator.MediaToggle, configurator.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session == nil {
		return configurator.MediaToggle{}, configurator.Snapshot{}, ErrNoSession
	}
	toggle, err := w.session.SelectMedia(ref)
	if err != nil {
		return configurator.MediaToggle{}, configurator.Snapshot{}, err
	}
	return toggle, w.session.Snapshot(), nil
}

// UpdateSelection applies patch. Every field is validated before any is
// written, so a rejected patch leaves the selection unchanged.
func (w *Workspace) UpdateSelection(ctx context.Context, patch SelectionPatch) (configurator.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session == nil {
		return configurator.Snapshot{}, ErrNoSession
	}
	if !w.session.IsOpen() {
		return configurator.Snapshot{}, configurator.ErrSessionClosed
	}
	if err := validatePatch(patch); err != nil {
		return configurator.Snapshot{}, err
	}
	if patch.QuantityStep > 0 {
		base := w.session.Selection().Quantity
		if patch.Quantity != nil {
			base = *patch.Quantity
		}
		if base >= configurator.MaxQuantity {
			return configurator.Snapshot{}, configurator.ErrQuantityLimit
		}
	}

	s := w.session
	var err error
	apply := func(fn func() error) {
		if err == nil {
			err = fn()
		}
	}
	if patch.Style != nil {
		apply(func() error { return s.SetStyle(*patch.Style) })
	}
	if patch.Theme != nil {
		apply(func() error { return s.SetTheme(*patch.Theme) })
	}
	if patch.Typography != nil {
		apply(func() error { return s.SetTypography(*patch.Typography) })
	}
	if patch.Packaging != nil {
		apply(func() error { return s.SetPackaging(*patch.Packaging) })
	}
	if patch.Quantity != nil {
		apply(func() error { return s.SetQuantity(*patch.Quantity) })
	}
	switch {
	case patch.QuantityStep > 0:
		apply(s.IncrementQuantity)
	case patch.QuantityStep < 0:
		apply(s.DecrementQuantity)
	}
	if patch.ResellerMark != nil {
		apply(func() error { return s.SetResellerMark(*patch.ResellerMark) })
	}
	if err != nil {
		return configurator.Snapshot{}, err
	}

	if patch.Style != nil || patch.Theme != nil || patch.Packaging != nil {
		w.annotate(ctx)
	}
	return s.Snapshot(), nil
}

func (w *Workspace) Advance() (configurator.Snapshot, error) {
	return w.navigate((*configurator.Session).Advance)
}

func (w *Workspace) Retreat() (configurator.Snapshot, error) {
	return w.navigate((*configurator.Session).Retreat)
}

func (w *Workspace) navigate(move func(*configurator.Session) (enums.ConfigStep, error)) (configurator.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session == nil {
		return configurator.Snapshot{}, ErrNoSession
	}
	if _, err := move(w.session); err != nil {
		return configurator.Snapshot{}, err
	}
	return w.session.Snapshot(), nil
}

// CommitSession moves the reviewed selection into the batch and ends the session.
func (w *Workspace) CommitSession() (batch.ConfiguredItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session == nil {
		return batch.ConfiguredItem{}, ErrNoSession
	}
	if err := w.session.Commit(w.batch); err != nil {
		return batch.ConfiguredItem{}, err
	}
	items := w.batch.Snapshot()
	w.endSession(metrics.OutcomeCommitted)
	return items[len(items)-1], nil
}

// AbandonSession discards the open session without touching the batch.
func (w *Workspace) AbandonSession() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if w.session == nil {
		return ErrNoSession
	}
	if err := w.session.Abandon(); err != nil {
		return err
	}
	w.endSession(metrics.OutcomeAbandoned)
	return nil
}

func (w *Workspace) Batch() BatchView {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return BatchView{
		Items:         w.batch.Snapshot(),
		Total:         w.batch.Total(),
		ExtendedTotal: w.batch.ExtendedTotal(),
	}
}

func (w *Workspace) RemoveItem(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return w.batch.Remove(id)
}

// Submit finalizes the batch into an order record.
func (w *Workspace) Submit(ctx context.Context) (orders.OrderRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return w.deps.Submitter.Submit(ctx, w.owner, w.batch)
}

// History lists the owner's orders, most recent first.
func (w *Workspace) History(ctx context.Context) ([]orders.OrderRecord, error) {
	w.touch()
	return w.deps.History.ListAll(ctx, w.owner)
}

// reapIdle abandons the open session when the workspace has been idle longer
// than ttl. It reports whether a session was reaped and whether the workspace
// now holds nothing worth keeping.
func (w *Workspace) reapIdle(now time.Time, ttl time.Duration) (reaped, disposable bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(time.Unix(0, w.lastActive.Load())) < ttl {
		return false, false
	}
	if w.session != nil && w.session.IsOpen() {
		_ = w.session.Abandon()
		w.endSession(metrics.OutcomeReaped)
		reaped = true
	}
	return reaped, w.session == nil && w.batch.IsEmpty()
}

func (w *Workspace) endSession(outcome string) {
	w.session = nil
	w.annotation = ""
	w.deps.Metrics.SessionClosed(outcome)
}

func (w *Workspace) touch() {
	w.lastActive.Store(w.deps.Clock.Now().UnixNano())
}

// annotate must be called with w.mu held. Results from a superseded session or
// an older dispatch are dropped.
func (w *Workspace) annotate(ctx context.Context) {
	if w.deps.Annotations == nil || w.session == nil {
		return
	}
	w.annotationSeq++
	session, dispatch := w.sessionSeq, w.annotationSeq
	w.deps.Annotations.Dispatch(ctx, w.session.Product(), w.session.Selection(), func(text string) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.sessionSeq == session && w.annotationSeq == dispatch && w.session != nil {
			w.annotation = text
		}
	})
}

func validatePatch(p SelectionPatch) error {
	if p.Style != nil && *p.Style != "" && !p.Style.IsValid() {
		return configurator.ErrInvalidOption.WithDetails(map[string]any{"reason": "unknown value", "field": "style", "value": p.Style.String()})
	}
	if p.Theme != nil && *p.Theme != "" && !p.Theme.IsValid() {
		return configurator.ErrInvalidOption.WithDetails(map[string]any{"reason": "unknown value", "field": "theme", "value": p.Theme.String()})
	}
	if p.Typography != nil && *p.Typography != "" && !p.Typography.IsValid() {
		return configurator.ErrInvalidOption.WithDetails(map[string]any{"reason": "unknown value", "field": "typography", "value": p.Typography.String()})
	}
	if p.Packaging != nil && *p.Packaging != "" && !p.Packaging.IsValid() {
		return configurator.ErrInvalidOption.WithDetails(map[string]any{"reason": "unknown value", "field": "packaging", "value": p.Packaging.String()})
	}
	return nil
}
