package configurator

import "github.com/angelmondragon/bcf-portal/pkg/enums"

type transition struct {
	next     enums.ConfigStep
	prev     enums.ConfigStep
	terminal bool
	guard    func(Selection) error
}

func alwaysPass(Selection) error { return nil }

// transitions is the wizard's state machine. The review step has no next;
// it leaves the machine only through Commit.
var transitions = map[enums.ConfigStep]transition{
	enums.ConfigStepMediaSelection: {
		next: enums.ConfigStepStyleAndBranding,
		prev: enums.ConfigStepMediaSelection,
		guard: func(sel Selection) error {
			if len(sel.MediaRefs) < 1 {
				return ErrMediaRequired
			}
			return nil
		},
	},
	enums.ConfigStepStyleAndBranding: {
		next:  enums.ConfigStepPackagingAndQuantity,
		prev:  enums.ConfigStepMediaSelection,
		guard: alwaysPass,
	},
	enums.ConfigStepPackagingAndQuantity: {
		next:  enums.ConfigStepReviewAndConfirm,
		prev:  enums.ConfigStepStyleAndBranding,
		guard: alwaysPass,
	},
	enums.ConfigStepReviewAndConfirm: {
		prev:     enums.ConfigStepPackagingAndQuantity,
		terminal: true,
	},
}
