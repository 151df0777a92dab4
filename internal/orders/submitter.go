package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/bcf-portal/internal/batch"
	"github.com/angelmondragon/bcf-portal/pkg/clock"
	"github.com/angelmondragon/bcf-portal/pkg/enums"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

// DefaultRetryBudget bounds how many id candidates Submit tries before giving up.
const DefaultRetryBudget = 16

// Draft is the batch surface the submitter needs. *batch.Batch satisfies it.
type Draft interface {
	IsEmpty() bool
	Len() int
	Total() int64
	Snapshot() []batch.ConfiguredItem
	Clear()
}

// SubmittedLine describes one item of a submitted order for staff.
type SubmittedLine struct {
	ItemID    string
	ProductID int64
	Name      string
	UnitPrice int64
	Quantity  int
}

// OrderSubmitted is emitted after a record is appended.
type OrderSubmitted struct {
	Record OrderRecord
	Lines  []SubmittedLine
}

// Notifier tells staff about new orders. Failures are logged and dropped.
type Notifier interface {
	NotifyOrderSubmitted(ctx context.Context, event OrderSubmitted) error
}

type submitMetrics interface {
	OrderSubmitted(items int, total int64)
	OrderIDCollision()
}

// SubmitterConfig wires a Submitter. History, IDs and Clock are required.
type SubmitterConfig struct {
	History     HistoryStore
	IDs         IDGenerator
	Clock       clock.Clock
	Reserver    Reserver
	Notifier    Notifier
	Metrics     submitMetrics
	Logger      *logger.Logger
	RetryBudget int
	// NotifyTimeout bounds each staff notification.
	NotifyTimeout time.Duration
}

// Submitter turns a batch into an order record.
type Submitter struct {
	history       HistoryStore
	ids           IDGenerator
	clock         clock.Clock
	reserver      Reserver
	notifier      Notifier
	metrics       submitMetrics
	logg          *logger.Logger
	retryBudget   int
	notifyTimeout time.Duration
}

func NewSubmitter(cfg SubmitterConfig) (*Submitter, error) {
	if cfg.History == nil {
		return nil, fmt.Errorf("history store required")
	}
	if cfg.IDs == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if cfg.Clock == nil {
		return nil, fmt.Errorf("clock required")
	}
	if cfg.RetryBudget <= 0 {
		cfg.RetryBudget = DefaultRetryBudget
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Submitter{
		history:       cfg.History,
		ids:           cfg.IDs,
		clock:         cfg.Clock,
		reserver:      cfg.Reserver,
		notifier:      cfg.Notifier,
		metrics:       cfg.Metrics,
		logg:          cfg.Logger,
		retryBudget:   cfg.RetryBudget,
		notifyTimeout: cfg.NotifyTimeout,
	}, nil
}

// Submit appends a pending record for draft and clears it. The draft is only
// cleared once the append succeeds; any error leaves it untouched.
func (s *Submitter) Submit(ctx context.Context, owner string, draft Draft) (OrderRecord, error) {
	if draft == nil || draft.IsEmpty() {
		return OrderRecord{}, ErrEmptyBatch
	}

	items := draft.Snapshot()
	now := s.clock.Now()
	record := OrderRecord{
		Owner:     owner,
		Date:      clock.Date(now),
		Status:    enums.OrderStatusPending,
		Total:     draft.Total(),
		Items:     draft.Len(),
		CreatedAt: now,
	}

	for attempt := 1; attempt <= s.retryBudget; attempt++ {
		id := s.ids.Next()

		taken, err := s.history.ExistsID(ctx, id)
		if err != nil {
			return OrderRecord{}, err
		}
		if taken || !s.reserve(ctx, id, owner) {
			s.collision(ctx, id, attempt)
			continue
		}

		record.ID = id
		if err := s.history.Append(ctx, record); err != nil {
			s.release(ctx, id)
			if errors.Is(err, ErrDuplicateOrderID) {
				s.collision(ctx, id, attempt)
				continue
			}
			return OrderRecord{}, err
		}

		draft.Clear()
		if s.metrics != nil {
			s.metrics.OrderSubmitted(record.Items, record.Total)
		}
		ctx = s.logg.WithOrderID(ctx, record.ID)
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"items": record.Items, "total": record.Total}), "order.submitted")
		s.notify(ctx, OrderSubmitted{Record: record, Lines: linesFor(items)})
		return record, nil
	}

	return OrderRecord{}, pkgerrors.Invariant("no free order id after %d attempts", s.retryBudget)
}

func (s *Submitter) reserve(ctx context.Context, id, owner string) bool {
	if s.reserver == nil {
		return true
	}
	ok, err := s.reserver.Reserve(ctx, id, owner)
	if err != nil {
		// history uniqueness still protects the append
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "order.id_reservation_unavailable")
		return true
	}
	return ok
}

func (s *Submitter) release(ctx context.Context, id string) {
	if s.reserver == nil {
		return
	}
	if err := s.reserver.Release(ctx, id); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "order.id_release_failed")
	}
}

func (s *Submitter) collision(ctx context.Context, id string, attempt int) {
	if s.metrics != nil {
		s.metrics.OrderIDCollision()
	}
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"candidate_id": id, "attempt": attempt}), "order.id_collision")
}

func (s *Submitter) notify(ctx context.Context, event OrderSubmitted) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyOrderSubmitted(ctx, event); err != nil {
			s.logg.Error(ctx, "order.notify_failed", err)
		}
	}()
}

func linesFor(items []batch.ConfiguredItem) []SubmittedLine {
	lines := make([]SubmittedLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, SubmittedLine{
			ItemID:    item.AssignedID.String(),
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.UnitPrice,
			Quantity:  item.Selection.Quantity,
		})
	}
	return lines
}
