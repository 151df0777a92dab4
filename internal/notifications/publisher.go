package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
	"github.com/angelmondragon/bcf-portal/pkg/money"
)

// EventOrderSubmitted is the event_type attribute on staff order messages.
const EventOrderSubmitted = "order_submitted"

const defaultPublishTimeout = 10 * time.Second

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
	// ResumePublish unblocks an ordering key after a failed publish.
	ResumePublish(orderingKey string)
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// OrderPayload is the JSON body staff consumers receive.
type OrderPayload struct {
	OrderID     string        `json:"order_id"`
	Owner       string        `json:"owner"`
	Date        string        `json:"date"`
	Status      string        `json:"status"`
	Total       string        `json:"total"`
	Items       int           `json:"items"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Lines       []LinePayload `json:"lines"`
}

type LinePayload struct {
	ItemID    string `json:"item_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// PubSubNotifier publishes submitted orders to the staff topic.
type PubSubNotifier struct {
	pub     publisher
	timeout time.Duration
	logg    *logger.Logger
}

// NewPubSubNotifier wraps a v2 publisher handle.
func NewPubSubNotifier(pub *gcppubsub.Publisher, logg *logger.Logger) (*PubSubNotifier, error) {
	if pub == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "pubsub publisher required")
	}
	return newPubSubNotifier(&gcpPublisher{Publisher: pub}, logg), nil
}

func newPubSubNotifier(pub publisher, logg *logger.Logger) *PubSubNotifier {
	if logg == nil {
		logg = logger.Nop()
	}
	return &PubSubNotifier{pub: pub, timeout: defaultPublishTimeout, logg: logg}
}

func (n *PubSubNotifier) NotifyOrderSubmitted(ctx context.Context, event orders.OrderSubmitted) error {
	data, err := json.Marshal(payloadFor(event))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order notification")
	}

	msg := &gcppubsub.Message{
		Data:        data,
		OrderingKey: event.Record.Owner,
		Attributes: map[string]string{
			"event_type": EventOrderSubmitted,
			"order_id":   event.Record.ID,
			"owner":      event.Record.Owner,
			"created_at": event.Record.CreatedAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	result := n.pub.Publish(publishCtx, msg)
	if result == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "publish returned no result")
	}
	serverID, err := result.Get(publishCtx)
	if err != nil {
		n.pub.ResumePublish(msg.OrderingKey)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("publish order %s", event.Record.ID))
	}

	logCtx := n.logg.WithOrderID(ctx, event.Record.ID)
	n.logg.Debug(n.logg.WithField(logCtx, "message_id", serverID), "order notification published")
	return nil
}

func payloadFor(event orders.OrderSubmitted) OrderPayload {
	lines := make([]LinePayload, 0, len(event.Lines))
	for _, line := range event.Lines {
		lines = append(lines, LinePayload{
			ItemID:    line.ItemID,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: money.Format(line.UnitPrice),
			Quantity:  line.Quantity,
		})
	}
	record := event.Record
	return OrderPayload{
		OrderID:     record.ID,
		Owner:       record.Owner,
		Date:        record.Date.Format(time.DateOnly),
		Status:      string(record.Status),
		Total:       money.Format(record.Total),
		Items:       record.Items,
		SubmittedAt: record.CreatedAt,
		Lines:       lines,
	}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) ResumePublish(key string) {
	if p == nil || p.Publisher == nil {
		return
	}
	p.Publisher.ResumePublish(key)
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
