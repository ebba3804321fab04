package config

import "strings"

// Tier is a named difficulty level.
type Tier string

// The seven ordered difficulty tiers.
const (
	TierEasy        Tier = "easy"
	TierNormal      Tier = "normal"
	TierHard        Tier = "hard"
	TierUnfair      Tier = "unfair"
	TierEmotional   Tier = "emotional"
	TierSingularity Tier = "singularity"
	TierOmega       Tier = "omega"
)

// AllTiers lists the tiers from easiest to hardest.
var AllTiers = []Tier{
	TierEasy,
	TierNormal,
	TierHard,
	TierUnfair,
	TierEmotional,
	TierSingularity,
	TierOmega,
}

// ParseTier resolves a tier name case-insensitively.
// Returns false for unknown names.
func ParseTier(name string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllTiers {
		if t == known {
			return t, true
		}
	}
	return TierNormal, false
}

// Next returns the following tier, wrapping around after the hardest.
func (t Tier) Next() Tier {
	for i, known := range AllTiers {
		if known == t {
			return AllTiers[(i+1)%len(AllTiers)]
		}
	}
	return TierNormal
}

// Prev returns the preceding tier, wrapping around before the easiest.
func (t Tier) Prev() Tier {
	for i, known := range AllTiers {
		if known == t {
			return AllTiers[(i+len(AllTiers)-1)%len(AllTiers)]
		}
	}
	return TierNormal
}

// Label returns the tier name in upper case for display.
func (t Tier) Label() string {
	return strings.ToUpper(string(t))
}

// Settings holds player-facing options. They can be replaced at any time
// while a run is in progress.
type Settings struct {
	Difficulty     Tier `yaml:"difficulty"`
	Sound          bool `yaml:"sound"`
	Haptics        bool `yaml:"haptics"`
	ReducedEffects bool `yaml:"reduced_effects"`
	Weather        bool `yaml:"weather"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:     TierNormal,
		Sound:          true,
		Haptics:        true,
		ReducedEffects: false,
		Weather:        true,
	}
}
