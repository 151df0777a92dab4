package enums

import "fmt"

// PackagingFormat enumerates the retail containers offered for white-label orders.
type PackagingFormat string

const (
	PackagingFormatMylarHolographic    PackagingFormat = "mylar_holographic"
	PackagingFormatMylarMatteBlack     PackagingFormat = "mylar_matte_black"
	PackagingFormatGlassJarBambooLid   PackagingFormat = "glass_jar_bamboo_lid"
	PackagingFormatPopTopTin           PackagingFormat = "pop_top_tin"
	PackagingFormatVacuumSealedStealth PackagingFormat = "vacuum_sealed_stealth"
)

var validPackagingFormats = []PackagingFormat{
	PackagingFormatMylarHolographic,
	PackagingFormatMylarMatteBlack,
	PackagingFormatGlassJarBambooLid,
	PackagingFormatPopTopTin,
	PackagingFormatVacuumSealedStealth,
}

// String implements fmt.Stringer.
func (p PackagingFormat) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PackagingFormat.
func (p PackagingFormat) IsValid() bool {
	for _, candidate := range validPackagingFormats {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePackagingFormat converts raw input into a PackagingFormat.
func ParsePackagingFormat(value string) (PackagingFormat, error) {
	for _, candidate := range validPackagingFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid packaging format %q", value)
}
