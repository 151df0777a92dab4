package notifications

import (
	"context"

	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
	"github.com/angelmondragon/bcf-portal/pkg/money"
)

// LogNotifier writes staff notifications to the structured log when no topic is configured.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	if logg == nil {
		logg = logger.Nop()
	}
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) NotifyOrderSubmitted(ctx context.Context, event orders.OrderSubmitted) error {
	ctx = n.logg.WithOrderID(ctx, event.Record.ID)
	ctx = n.logg.WithFields(ctx, map[string]any{
		"owner": event.Record.Owner,
		"items": event.Record.Items,
		"total": money.Format(event.Record.Total),
	})
	n.logg.Info(ctx, "staff.order_notification")
	return nil
}
