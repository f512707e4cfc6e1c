package profile

import (
	"testing"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownNames(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p := Resolve(name)
			assert.Equal(t, name, p.Name)
		})
	}
}

func TestResolve_UnknownFallsBackToBalanced(t *testing.T) {
	assert.Equal(t, Balanced, Resolve("lenient").Name)
	assert.Equal(t, Balanced, Resolve("").Name)

	_, ok := Lookup("lenient")
	assert.False(t, ok)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Strict, Resolve(" STRICT ").Name)
}

func TestProfiles_AreComplete(t *testing.T) {
	claimTypes := []model.ClaimType{
		model.ClaimTypeAttribution, model.ClaimTypeOrigin, model.ClaimTypeCausation,
		model.ClaimTypeIntent, model.ClaimTypeIdentity, model.ClaimTypeExistence,
		model.ClaimTypeAuthority, model.ClaimTypeOther,
	}

	for _, name := range Names() {
		p, ok := Lookup(name)
		require.True(t, ok)

		for _, kind := range model.SourceKinds {
			assert.Contains(t, p.KindBase, kind, "%s kind base", name)
			assert.Contains(t, p.KindHierarchy, kind, "%s hierarchy", name)
		}
		for _, ct := range claimTypes {
			assert.Contains(t, p.NatureFactor, ct, "%s nature factor", name)
		}

		assert.InDelta(t, 1.0, p.Credibility.Independence+p.Credibility.Discipline, 1e-9)
		assert.InDelta(t, 1.0, p.Coverage.Base+p.Coverage.Ratio, 1e-9)
		assert.Greater(t, p.PenaltyPower, 0.0)
	}
}

func TestProfiles_OrderedByStrictness(t *testing.T) {
	s, b, p := Resolve(Strict), Resolve(Balanced), Resolve(Permissive)

	for _, kind := range model.SourceKinds {
		assert.Less(t, s.KindBaseFor(kind), b.KindBaseFor(kind))
		assert.Less(t, b.KindBaseFor(kind), p.KindBaseFor(kind))
	}

	assert.Greater(t, s.Seriousness.MeanFinal, b.Seriousness.MeanFinal)
	assert.Greater(t, b.Seriousness.MeanFinal, p.Seriousness.MeanFinal)
	assert.Greater(t, s.PenaltyPower, p.PenaltyPower)
}

func TestMediaKindBase_WithinExpectedRange(t *testing.T) {
	for _, name := range Names() {
		base := Resolve(name).KindBaseFor(model.KindMedia)
		assert.GreaterOrEqual(t, base, 0.35)
		assert.LessOrEqual(t, base, 0.52)
	}
}

func TestResolve_ReturnsIndependentTables(t *testing.T) {
	first := Resolve(Balanced)
	first.KindBase[model.KindMedia] = 0.99

	assert.InDelta(t, 0.45, Resolve(Balanced).KindBaseFor(model.KindMedia), 1e-12)
}

func TestNatureFor_UnlistedTypeUsesOther(t *testing.T) {
	p := Resolve(Balanced)
	assert.Equal(t, p.NatureFactor[model.ClaimTypeOther], p.NatureFor("sabotage"))
}
