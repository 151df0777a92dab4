package controllers

import (
	"net/http"

	"github.com/angelmondragon/bcf-portal/api/middleware"
	"github.com/angelmondragon/bcf-portal/internal/workflow"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
)

// Workspaces resolves the caller's workspace. *workflow.Registry satisfies it.
type Workspaces interface {
	Workspace(owner string) (*workflow.Workspace, error)
}

func workspaceFor(r *http.Request, reg Workspaces) (*workflow.Workspace, error) {
	if reg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "workspace registry unavailable")
	}
	return reg.Workspace(middleware.OwnerFromContext(r.Context()))
}
