package enums

import "fmt"

// ConfigStep identifies a stage of the product configuration wizard.
type ConfigStep string

const (
	ConfigStepMediaSelection       ConfigStep = "media_selection"
	ConfigStepStyleAndBranding     ConfigStep = "style_and_branding"
	ConfigStepPackagingAndQuantity ConfigStep = "packaging_and_quantity"
	ConfigStepReviewAndConfirm     ConfigStep = "review_and_confirm"
)

// configSteps is ordered; the slice index is the step number shown to buyers.
var configSteps = []ConfigStep{
	ConfigStepMediaSelection,
	ConfigStepStyleAndBranding,
	ConfigStepPackagingAndQuantity,
	ConfigStepReviewAndConfirm,
}

// ConfigSteps returns the wizard steps in order.
func ConfigSteps() []ConfigStep {
	steps := make([]ConfigStep, len(configSteps))
	copy(steps, configSteps)
	return steps
}

// String implements fmt.Stringer.
func (c ConfigStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConfigStep.
func (c ConfigStep) IsValid() bool {
	return c.Index() >= 0
}

// Index returns the zero-based position of the step, or -1 when unknown.
func (c ConfigStep) Index() int {
	for i, candidate := range configSteps {
		if candidate == c {
			return i
		}
	}
	return -1
}

// ParseConfigStep converts raw input into a ConfigStep.
func ParseConfigStep(value string) (ConfigStep, error) {
	for _, candidate := range configSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid config step %q", value)
}
