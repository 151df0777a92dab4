package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/pkg/enums"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

type stubPublisher struct {
	msgs    []*gcppubsub.Message
	result  publishResult
	resumed []string
}

func (p *stubPublisher) ResumePublish(key string) {
	p.resumed = append(p.resumed, key)
}

func (p *stubPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	p.msgs = append(p.msgs, msg)
	return p.result
}

type stubResult struct {
	id  string
	err error
}

func (r stubResult) Get(ctx context.Context) (string, error) {
	return r.id, r.err
}

func sampleEvent() orders.OrderSubmitted {
	placed := time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC)
	return orders.OrderSubmitted{
		Record: orders.OrderRecord{
			ID:        "BCF-123456",
			Owner:     "buyer-1",
			Date:      time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			Status:    enums.OrderStatusPending,
			Total:     800,
			Items:     2,
			CreatedAt: placed,
		},
		Lines: []orders.SubmittedLine{
			{ItemID: "a", ProductID: 1, Name: "Blue Dream", UnitPrice: 420, Quantity: 1},
			{ItemID: "b", ProductID: 2, Name: "OG Kush", UnitPrice: 380, Quantity: 3},
		},
	}
}

func TestPubSubNotifierPublishesOrder(t *testing.T) {
	pub := &stubPublisher{result: stubResult{id: "msg-1"}}
	n := newPubSubNotifier(pub, nil)

	if err := n.NotifyOrderSubmitted(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(pub.msgs))
	}
	msg := pub.msgs[0]
	if msg.Attributes["event_type"] != EventOrderSubmitted {
		t.Fatalf("unexpected event_type %q", msg.Attributes["event_type"])
	}
	if msg.OrderingKey != "buyer-1" {
		t.Fatalf("expected owner ordering key, got %q", msg.OrderingKey)
	}
	if msg.Attributes["order_id"] != "BCF-123456" {
		t.Fatalf("unexpected order_id %q", msg.Attributes["order_id"])
	}

	var payload OrderPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Total != "800.00" || payload.Date != "2026-03-02" || payload.Status != "pending" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if len(payload.Lines) != 2 || payload.Lines[1].UnitPrice != "380.00" || payload.Lines[1].Quantity != 3 {
		t.Fatalf("unexpected lines %+v", payload.Lines)
	}
}

func TestPubSubNotifierSurfacesPublishFailure(t *testing.T) {
	pub := &stubPublisher{result: stubResult{err: errors.New("unavailable")}}
	n := newPubSubNotifier(pub, nil)

	err := n.NotifyOrderSubmitted(context.Background(), sampleEvent())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !pkgerrors.IsRetryable(err) {
		t.Fatalf("publish failures should be retryable")
	}
	if len(pub.resumed) != 1 || pub.resumed[0] != "buyer-1" {
		t.Fatalf("expected ordering key resumed, got %v", pub.resumed)
	}
}

func TestPubSubNotifierNilResult(t *testing.T) {
	n := newPubSubNotifier(&stubPublisher{}, nil)
	if err := n.NotifyOrderSubmitted(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error when publish returns no result")
	}
}

func TestNewPubSubNotifierRequiresPublisher(t *testing.T) {
	if _, err := NewPubSubNotifier(nil, nil); err == nil {
		t.Fatal("expected error for nil publisher")
	}
}

func TestLogNotifierWritesEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	n := NewLogNotifier(logger.New(logger.Options{ServiceName: "test", Output: buf}))

	if err := n.NotifyOrderSubmitted(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	for _, want := range []string{`"order_id":"BCF-123456"`, `"total":"800.00"`, "staff.order_notification"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("expected %s in %s", want, buf.String())
		}
	}
}
