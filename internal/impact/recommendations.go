package impact

import (
	"fmt"
	"math"

	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/scssimpact/internal/collections"
)

// Advisory rule thresholds.
const (
	typographyPropertyMin = 4
	layoutPropertyMin     = 3
)

var typographyProperties = collections.NewSet(
	"font", "font-size", "font-family", "font-weight", "font-style",
	"line-height", "letter-spacing", "text-transform",
)

var layoutProperties = collections.NewSet(
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"width", "height", "min-width", "min-height", "max-width", "max-height",
	"top", "right", "bottom", "left", "display", "position", "flex", "grid",
	"gap", "flex-basis", "grid-template-columns", "grid-template-rows",
)

// recommendations derives plain-text advisories from an analysis. The rules
// are simple thresholds evaluated in a fixed order, so the output is
// deterministic for a given analysis.
func recommendations(a *VariableImpactAnalysis) []string {
	recs := []string{}

	if rec, ok := colorTransitionAdvisory(a.CurrentValue, a.NewValue); ok {
		recs = append(recs, rec)
	}

	typography, layout := 0, 0
	for _, p := range a.AffectedProperties {
		if typographyProperties.Has(p.Property) {
			typography++
		}
		if layoutProperties.Has(p.Property) {
			layout++
		}
	}
	if typography >= typographyPropertyMin {
		recs = append(recs, fmt.Sprintf(
			"%d typography properties are affected; verify text remains readable at every breakpoint", typography))
	}
	if layout >= layoutPropertyMin {
		recs = append(recs, fmt.Sprintf(
			"%d layout properties are affected; check for overflow and reflow regressions", layout))
	}

	if a.RiskLevel == RiskHigh {
		recs = append(recs, "high-risk change: roll out behind a visual regression test or staged release")
	}

	if len(a.AffectedProperties) == 0 && len(a.CascadingVariables) == 0 {
		recs = append(recs, "no recorded usages or dependents; the change appears safe but usage data may be incomplete")
	}

	return recs
}

// colorTransitionAdvisory describes the visual change when both the current
// and the proposed value parse as CSS colors.
func colorTransitionAdvisory(current, proposed string) (string, bool) {
	from, errFrom := csscolorparser.Parse(current)
	to, errTo := csscolorparser.Parse(proposed)
	if errFrom != nil || errTo != nil {
		return "", false
	}
	if from.HexString() == to.HexString() {
		return "", false
	}

	rec := fmt.Sprintf("color changes from %s to %s; review contrast against adjacent surfaces",
		from.HexString(), to.HexString())
	if delta := math.Abs(relativeLuminance(from) - relativeLuminance(to)); delta > 0.4 {
		rec += fmt.Sprintf(" (large lightness shift: %.2f)", delta)
	}
	return rec, true
}

// relativeLuminance computes WCAG relative luminance from linearized sRGB
// channels.
func relativeLuminance(c csscolorparser.Color) float64 {
	lin := func(ch float64) float64 {
		if ch <= 0.03928 {
			return ch / 12.92
		}
		return math.Pow((ch+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}
