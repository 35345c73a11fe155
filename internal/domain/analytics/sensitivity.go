package analytics

// Sensitivity is the coarse knob selecting a heuristic's numeric
// threshold. Unknown values fall back to medium.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// ParseSensitivity normalizes a raw string, defaulting to medium.
func ParseSensitivity(raw string) Sensitivity {
	switch Sensitivity(raw) {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
		return Sensitivity(raw)
	}
	return SensitivityMedium
}
