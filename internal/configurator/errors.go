package configurator

import pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"

var (
	ErrMediaCapReached    = pkgerrors.New(pkgerrors.CodeValidation, "media selection is limited to 5 photos")
	ErrMediaOutOfRange    = pkgerrors.New(pkgerrors.CodeValidation, "media reference is not in the library")
	ErrMediaRequired      = pkgerrors.New(pkgerrors.CodeValidation, "select at least one photo before continuing")
	ErrInvalidOption      = pkgerrors.New(pkgerrors.CodeValidation, "invalid configuration option")
	ErrProductUnavailable = pkgerrors.New(pkgerrors.CodeValidation, "product is out of stock")
	ErrQuantityLimit      = pkgerrors.New(pkgerrors.CodeValidation, "quantity is limited to 10000 bags")
	ErrTerminalStep       = pkgerrors.New(pkgerrors.CodeStateConflict, "review step can only be committed")
	ErrCommitNotAllowed   = pkgerrors.New(pkgerrors.CodeStateConflict, "commit is only allowed from the review step")
	ErrSessionClosed      = pkgerrors.New(pkgerrors.CodeStateConflict, "configuration session is closed")
)

func invalidOption(field, value string) error {
	return ErrInvalidOption.WithDetails(map[string]any{
		"reason": "unknown value",
		"field":  field,
		"value":  value,
	})
}
