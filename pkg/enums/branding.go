package enums

import "fmt"

// BudStyle describes how product is presented in marketing photos.
type BudStyle string

const (
	BudStyleLargeColas  BudStyle = "large_colas"
	BudStyleDenseNugs   BudStyle = "dense_nugs"
	BudStyleSmallBuds   BudStyle = "small_buds"
	BudStylePopcorn     BudStyle = "popcorn"
	BudStyleHandTrimmed BudStyle = "hand_trimmed"
)

var validBudStyles = []BudStyle{
	BudStyleLargeColas,
	BudStyleDenseNugs,
	BudStyleSmallBuds,
	BudStylePopcorn,
	BudStyleHandTrimmed,
}

// String implements fmt.Stringer.
func (b BudStyle) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BudStyle.
func (b BudStyle) IsValid() bool {
	for _, candidate := range validBudStyles {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBudStyle converts raw input into a BudStyle.
func ParseBudStyle(value string) (BudStyle, error) {
	for _, candidate := range validBudStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bud style %q", value)
}

// BackgroundTheme is the label artwork backdrop.
type BackgroundTheme string

const (
	BackgroundThemeMinimalistWhite BackgroundTheme = "minimalist_white"
	BackgroundThemeDarkObsidian    BackgroundTheme = "dark_obsidian"
	BackgroundThemeGoldenHour      BackgroundTheme = "golden_hour"
	BackgroundThemeNeonEmber       BackgroundTheme = "neon_ember"
	BackgroundThemeNaturalWood     BackgroundTheme = "natural_wood"
)

var validBackgroundThemes = []BackgroundTheme{
	BackgroundThemeMinimalistWhite,
	BackgroundThemeDarkObsidian,
	BackgroundThemeGoldenHour,
	BackgroundThemeNeonEmber,
	BackgroundThemeNaturalWood,
}

// String implements fmt.Stringer.
func (b BackgroundTheme) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BackgroundTheme.
func (b BackgroundTheme) IsValid() bool {
	for _, candidate := range validBackgroundThemes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBackgroundTheme converts raw input into a BackgroundTheme.
func ParseBackgroundTheme(value string) (BackgroundTheme, error) {
	for _, candidate := range validBackgroundThemes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid background theme %q", value)
}

// Typography is the label typeface family.
type Typography string

const (
	TypographyModernSans     Typography = "modern_sans"
	TypographyElegantSerif   Typography = "elegant_serif"
	TypographyStreetScript   Typography = "street_script"
	TypographyBoldIndustrial Typography = "bold_industrial"
	TypographyLuxuryThin     Typography = "luxury_thin"
)

var validTypographies = []Typography{
	TypographyModernSans,
	TypographyElegantSerif,
	TypographyStreetScript,
	TypographyBoldIndustrial,
	TypographyLuxuryThin,
}

// String implements fmt.Stringer.
func (t Typography) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Typography.
func (t Typography) IsValid() bool {
	for _, candidate := range validTypographies {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTypography converts raw input into a Typography.
func ParseTypography(value string) (Typography, error) {
	for _, candidate := range validTypographies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid typography %q", value)
}
