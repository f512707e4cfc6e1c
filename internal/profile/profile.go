// Package profile holds the three calibration presets. A profile is resolved
// once per run and passed by value into every scoring call.
package profile

import (
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
)

const (
	Strict     = "strict"
	Balanced   = "balanced"
	Permissive = "permissive"
)

// FeatureBias is a signed adjustment added to each per-evidence factor before clamping
type FeatureBias struct {
	I float64 `yaml:"I"`
	A float64 `yaml:"A"`
	M float64 `yaml:"M"`
	P float64 `yaml:"P"`
	T float64 `yaml:"T"`
}

// CredibilityWeights blend source independence with claim discipline
type CredibilityWeights struct {
	Independence float64 `yaml:"independence"`
	Discipline   float64 `yaml:"discipline"`
}

// CoverageBlend mixes 1.0 with the support-coverage ratio: Base + Ratio*coverage
type CoverageBlend struct {
	Base  float64 `yaml:"base"`
	Ratio float64 `yaml:"ratio"`
}

// Thresholds are the seriousness-gate minimums
type Thresholds struct {
	MeanFinal           float64 `yaml:"mean_final"`
	MedianCredibility   float64 `yaml:"median_credibility"`
	MedianCorroboration float64 `yaml:"median_corroboration"`
}

// Profile supplies every tunable weight and threshold used in scoring
type Profile struct {
	Name          string                       `yaml:"name"`
	KindBase      map[model.SourceKind]float64 `yaml:"kind_base"`
	Bias          FeatureBias                  `yaml:"feature_bias"`
	PenaltyPower  float64                      `yaml:"penalty_power"`
	KindHierarchy map[model.SourceKind]float64 `yaml:"kind_hierarchy"`
	Credibility   CredibilityWeights           `yaml:"credibility_weights"`
	Coverage      CoverageBlend                `yaml:"coverage_blend"`
	NatureFactor  map[model.ClaimType]float64  `yaml:"nature_factor"`
	Seriousness   Thresholds                   `yaml:"seriousness"`
}

// Names lists the available profiles
func Names() []string {
	return []string{Strict, Balanced, Permissive}
}

// Lookup returns the named profile
func Lookup(name string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Strict:
		return strict(), true
	case Balanced:
		return balanced(), true
	case Permissive:
		return permissive(), true
	default:
		return Profile{}, false
	}
}

// Resolve returns the named profile, falling back to balanced for unknown names
func Resolve(name string) Profile {
	if p, ok := Lookup(name); ok {
		return p
	}
	return balanced()
}

// KindBaseFor returns the base independence score for a source kind
func (p Profile) KindBaseFor(kind model.SourceKind) float64 {
	if v, ok := p.KindBase[kind]; ok {
		return v
	}
	return p.KindBase[model.KindUnknown]
}

// HierarchyFor returns the credibility tier value for a source kind
func (p Profile) HierarchyFor(kind model.SourceKind) float64 {
	if v, ok := p.KindHierarchy[kind]; ok {
		return v
	}
	return p.KindHierarchy[model.KindUnknown]
}

// NatureFor returns the claim-type nature factor, using "other" for unlisted types
func (p Profile) NatureFor(claimType model.ClaimType) float64 {
	if v, ok := p.NatureFactor[claimType]; ok {
		return v
	}
	return p.NatureFactor[model.ClaimTypeOther]
}

// Each preset is built fresh on every call so no caller can mutate a shared table.

func strict() Profile {
	return Profile{
		Name:          Strict,
		KindBase:      kindTable(0.75, 0.65, 0.70, 0.52, 0.42, 0.35, 0.22),
		Bias:          FeatureBias{I: -0.02, A: -0.02, M: -0.02, P: -0.02, T: -0.02},
		PenaltyPower:  1.25,
		KindHierarchy: kindTable(0.85, 0.70, 0.75, 0.52, 0.42, 0.38, 0.20),
		Credibility:   CredibilityWeights{Independence: 0.50, Discipline: 0.50},
		Coverage:      CoverageBlend{Base: 0.40, Ratio: 0.60},
		NatureFactor:  natureTable(0.85, 0.90, 0.80, 0.70, 0.88, 0.95, 0.90, 0.85),
		Seriousness:   Thresholds{MeanFinal: 0.60, MedianCredibility: 0.62, MedianCorroboration: 0.55},
	}
}

func balanced() Profile {
	return Profile{
		Name:          Balanced,
		KindBase:      kindTable(0.80, 0.72, 0.75, 0.60, 0.50, 0.45, 0.30),
		Bias:          FeatureBias{},
		PenaltyPower:  1.0,
		KindHierarchy: kindTable(0.95, 0.80, 0.85, 0.65, 0.55, 0.50, 0.30),
		Credibility:   CredibilityWeights{Independence: 0.60, Discipline: 0.40},
		Coverage:      CoverageBlend{Base: 0.50, Ratio: 0.50},
		NatureFactor:  natureTable(0.92, 0.95, 0.88, 0.82, 0.93, 1.0, 0.95, 0.92),
		Seriousness:   Thresholds{MeanFinal: 0.45, MedianCredibility: 0.50, MedianCorroboration: 0.40},
	}
}

func permissive() Profile {
	return Profile{
		Name:          Permissive,
		KindBase:      kindTable(0.85, 0.78, 0.80, 0.68, 0.58, 0.52, 0.38),
		Bias:          FeatureBias{I: 0.02, A: 0.02, M: 0.02, P: 0.02, T: 0.02},
		PenaltyPower:  0.75,
		KindHierarchy: kindTable(1.0, 0.88, 0.92, 0.75, 0.65, 0.60, 0.40),
		Credibility:   CredibilityWeights{Independence: 0.70, Discipline: 0.30},
		Coverage:      CoverageBlend{Base: 0.60, Ratio: 0.40},
		NatureFactor:  natureTable(1.0, 1.0, 0.95, 0.95, 1.0, 1.0, 1.0, 1.0),
		Seriousness:   Thresholds{MeanFinal: 0.30, MedianCredibility: 0.38, MedianCorroboration: 0.28},
	}
}

func kindTable(court, government, academic, ngo, vendor, media, unknown float64) map[model.SourceKind]float64 {
	return map[model.SourceKind]float64{
		model.KindCourt:      court,
		model.KindGovernment: government,
		model.KindAcademic:   academic,
		model.KindNGO:        ngo,
		model.KindVendor:     vendor,
		model.KindMedia:      media,
		model.KindUnknown:    unknown,
	}
}

func natureTable(attribution, origin, causation, intent, identity, existence, authority, other float64) map[model.ClaimType]float64 {
	return map[model.ClaimType]float64{
		model.ClaimTypeAttribution: attribution,
		model.ClaimTypeOrigin:      origin,
		model.ClaimTypeCausation:   causation,
		model.ClaimTypeIntent:      intent,
		model.ClaimTypeIdentity:    identity,
		model.ClaimTypeExistence:   existence,
		model.ClaimTypeAuthority:   authority,
		model.ClaimTypeOther:       other,
	}
}
