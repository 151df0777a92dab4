package annotations

import (
	"context"
	"time"

	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Dispatcher runs an Annotator in the background. Dispatch never blocks on it.
type Dispatcher struct {
	annotator Annotator
	timeout   time.Duration
	logg      *logger.Logger
}

func NewDispatcher(annotator Annotator, timeout time.Duration, logg *logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Dispatcher{annotator: annotator, timeout: timeout, logg: logg}
}

// Dispatch annotates in a goroutine and hands the text to deliver on success.
// Failures are logged and dropped. The returned channel closes when the
// goroutine finishes.
func (d *Dispatcher) Dispatch(ctx context.Context, product catalog.Product, sel configurator.Selection, deliver func(string)) <-chan struct{} {
	done := make(chan struct{})
	if d == nil || d.annotator == nil {
		close(done)
		return done
	}

	ctx = context.WithoutCancel(ctx)
	sel = sel.Clone()
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		text, err := d.annotator.Annotate(ctx, product, sel)
		if err != nil {
			d.logg.Warn(d.logg.WithField(d.logg.WithProductID(ctx, product.ID), "error", err.Error()), "annotation.failed")
			return
		}
		if deliver != nil {
			deliver(text)
		}
	}()
	return done
}
