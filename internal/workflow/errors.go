package workflow

import pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"

var (
	ErrSessionOpen  = pkgerrors.New(pkgerrors.CodeStateConflict, "a configuration session is already open")
	ErrNoSession    = pkgerrors.New(pkgerrors.CodeNotFound, "no configuration session is open")
	ErrOwnerMissing = pkgerrors.New(pkgerrors.CodeUnauthorized, "owner token required")
)
