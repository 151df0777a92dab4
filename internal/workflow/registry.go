package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/pkg/clock"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
	"github.com/angelmondragon/bcf-portal/pkg/metrics"
)

type submitter interface {
	Submit(ctx context.Context, owner string, draft orders.Draft) (orders.OrderRecord, error)
}

type annotationDispatcher interface {
	Dispatch(ctx context.Context, product catalog.Product, sel configurator.Selection, deliver func(string)) <-chan struct{}
}

// Deps are the collaborators shared by every workspace.
type Deps struct {
	Catalog     catalog.Reader
	Submitter   submitter
	History     orders.HistoryStore
	Clock       clock.Clock
	Metrics     *metrics.WorkflowMetrics
	Annotations annotationDispatcher
	Logger      *logger.Logger
}

// Registry maps owner tokens to their workspaces, creating them on first use.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	deps       *Deps
}

func NewRegistry(deps Deps) (*Registry, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if deps.Submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if deps.History == nil {
		return nil, fmt.Errorf("history store required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		deps:       &deps,
	}, nil
}

// Workspace returns the owner's workspace.
func (r *Registry) Workspace(owner string) (*Workspace, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerMissing
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[owner]
	if !ok {
		ws = newWorkspace(owner, r.deps)
		r.workspaces[owner] = ws
		r.deps.Metrics.SetWorkspaces(len(r.workspaces))
	}
	ws.touch()
	return ws, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// ReapIdle abandons sessions idle for at least ttl and forgets workspaces left
// with no session and an empty batch. Batches with items are never touched.
func (r *Registry) ReapIdle(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("idle ttl must be positive")
	}
	now := r.deps.Clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	reapedCount := 0
	for owner, ws := range r.workspaces {
		if err := ctx.Err(); err != nil {
			return reapedCount, err
		}
		reaped, disposable := ws.reapIdle(now, ttl)
		if reaped {
			reapedCount++
			r.deps.Logger.Info(r.deps.Logger.WithOwner(ctx, owner), "workflow.session_reaped")
		}
		if disposable {
			delete(r.workspaces, owner)
		}
	}
	r.deps.Metrics.SetWorkspaces(len(r.workspaces))
	return reapedCount, nil
}
