package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/evidentia/internal/model"
)

func newDocument(sources []model.SourceMention, artifacts []model.ArtifactMention, pages []model.Page, claims []model.Claim) *model.Document {
	pubDate := "2024-03-01"
	if sources == nil {
		sources = []model.SourceMention{}
	}
	if artifacts == nil {
		artifacts = []model.ArtifactMention{}
	}
	if pages == nil {
		pages = []model.Page{}
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	return &model.Document{
		Metadata: &model.DocumentMetadata{PublicationDate: &pubDate},
		Stage1: &model.Stage1{
			GlobalIndices: &model.GlobalIndices{Sources: &sources, Artifacts: &artifacts},
			Pages:         &pages,
		},
		Stage2: &model.Stage2{AttributionClaims: &claims},
	}
}

func claimWithSources(id string, sources ...model.SourceMention) model.Claim {
	return model.Claim{
		ID: id,
		SixC: &model.SixC{
			ChainOfCustody: &model.CustodyBlock{},
			Credibility:    &model.CredibilityBlock{Sources: sources},
			Corroboration:  &model.CorroborationBlock{},
			Coherence:      &model.CoherenceBlock{},
			Confidence:     &model.ScoredBlock{},
			Compliance:     &model.ScoredBlock{},
		},
	}
}

func TestSourceNormalizer_MergesMentions(t *testing.T) {
	doc := newDocument(
		[]model.SourceMention{
			{ID: "s1", Title: "Joint advisory", URL: "https://www.cisa.gov/advisory", Authors: []string{"CISA"}},
		},
		nil, nil,
		[]model.Claim{
			claimWithSources("c1", model.SourceMention{
				ID:             "s1",
				Title:          "ignored title",
				Authors:        []string{"CISA", "NCSC"},
				StatedConflict: true,
				Year:           2023,
			}),
		},
	)

	reg := NewSourceNormalizer(nil).Normalize(doc)

	require.Equal(t, 1, reg.Len())
	src, ok := reg.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "Joint advisory", src.Title)
	assert.Equal(t, []string{"CISA", "NCSC"}, src.Authors)
	assert.True(t, src.StatedConflict)
	assert.Equal(t, 2023, src.Year)
	assert.Equal(t, "cisa.gov", src.Domain)
	assert.Equal(t, model.KindGovernment, src.Kind)
	assert.True(t, src.KindInferred)
	assert.Equal(t, 2, src.Mentions)
	assert.Empty(t, reg.Duplicates, "claim-level repeat is a reference, not a duplicate")
}

func TestSourceNormalizer_FlagsGlobalDuplicates(t *testing.T) {
	doc := newDocument(
		[]model.SourceMention{{ID: "s1"}, {ID: "s1"}, {ID: "s1"}, {ID: "s2"}},
		nil, nil, nil,
	)

	reg := NewSourceNormalizer(nil).Normalize(doc)

	assert.Equal(t, []string{"s1"}, reg.Duplicates)
	assert.Equal(t, []string{"s1", "s2"}, reg.Order)
}

func TestSourceNormalizer_ExplicitKind(t *testing.T) {
	doc := newDocument(
		[]model.SourceMention{
			{ID: "s1", Kind: "Media", Domain: "cisa.gov"},
			{ID: "s2", Kind: "blog"},
		},
		nil, nil, nil,
	)

	reg := NewSourceNormalizer(nil).Normalize(doc)

	s1, _ := reg.Get("s1")
	s2, _ := reg.Get("s2")
	assert.Equal(t, model.KindMedia, s1.Kind)
	assert.False(t, s1.KindInferred)
	assert.Equal(t, model.KindUnknown, s2.Kind)
}

func TestSourceNormalizer_SyntheticIDsAreStable(t *testing.T) {
	build := func() *model.Document {
		return newDocument(
			[]model.SourceMention{{Title: "Untitled memo", URL: "https://example.org/memo"}},
			nil, nil, nil,
		)
	}

	first := NewSourceNormalizer(nil).Normalize(build())
	second := NewSourceNormalizer(nil).Normalize(build())

	require.Len(t, first.Order, 1)
	assert.Equal(t, first.Order, second.Order)
	assert.Regexp(t, `^src-[0-9a-f]{12}$`, first.Order[0])
}

func TestOriginSignature(t *testing.T) {
	doc := newDocument(
		[]model.SourceMention{
			{ID: "press", URL: "https://www.reuters.com/a", Cites: []string{"vendor"}},
			{ID: "blog", URL: "https://news.example.co.uk/b", Cites: []string{"vendor", "gov"}},
			{ID: "vendor", URL: "https://cloud.mandiant.com/report"},
			{ID: "gov", URL: "https://www.cisa.gov/x"},
			{ID: "orphan", Cites: []string{"missing"}},
			{ID: "bare"},
		},
		nil, nil, nil,
	)

	reg := NewSourceNormalizer(nil).Normalize(doc)

	tests := []struct {
		id   string
		want []string
	}{
		{"press", []string{"mandiant-com"}},
		{"blog", []string{"cisa-gov", "mandiant-com"}},
		{"vendor", []string{"mandiant-com"}},
		{"orphan", []string{"missing"}},
		{"bare", []string{"bare"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			src, ok := reg.Get(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, src.OriginSignature)
		})
	}

	press, _ := reg.Get("press")
	vendor, _ := reg.Get("vendor")
	assert.Equal(t, vendor.OriginKey(), press.OriginKey(), "re-citation collapses onto the cited origin")
	assert.Equal(t, 1, reg.DistinctOrigins([]string{"press", "vendor", "unknown-id"}))
}

func TestOriginSignature_Cycle(t *testing.T) {
	doc := newDocument(
		[]model.SourceMention{
			{ID: "a", Domain: "alpha.org", Cites: []string{"b"}},
			{ID: "b", Domain: "beta.org", Cites: []string{"a"}},
			{ID: "self", Domain: "self.org", Cites: []string{"self"}},
		},
		nil, nil, nil,
	)

	reg := NewSourceNormalizer(nil).Normalize(doc)

	// The revisited node on the path becomes the terminal
	a, _ := reg.Get("a")
	b, _ := reg.Get("b")
	self, _ := reg.Get("self")
	assert.Equal(t, []string{"alpha-org"}, a.OriginSignature)
	assert.Equal(t, []string{"beta-org"}, b.OriginSignature)
	assert.Equal(t, []string{"self-org"}, self.OriginSignature)
}

func TestNormalizeArtifacts(t *testing.T) {
	doc := newDocument(
		nil,
		[]model.ArtifactMention{
			{ID: "a1", Type: "Hash_SHA256", Value: "abc", Location: &model.Location{Page: 2, Block: 4}},
			{ID: "a2", Type: "domain", Value: "evil.example"},
		},
		[]model.Page{
			{
				PageNumber:     3,
				CitationsFound: &[]model.Citation{},
				ArtifactsFound: []model.ArtifactMention{
					{ID: "a2", Value: "evil.example", Location: &model.Location{Block: 7}},
					{ID: "a3", Type: "ip", Value: "203.0.113.9"},
					{Type: "url", Value: "https://evil.example/x"},
				},
			},
		},
		nil,
	)

	reg := NormalizeArtifacts(doc)

	require.Len(t, reg.Order, 4)
	a1, _ := reg.Get("a1")
	assert.Equal(t, "hash_sha256", a1.Type)
	assert.Equal(t, 2, a1.Location.Page)

	a2, _ := reg.Get("a2")
	require.True(t, a2.HasAnchor(), "page mention supplies the missing anchor")
	assert.Equal(t, model.Location{Page: 3, Block: 7}, *a2.Location)

	a3, _ := reg.Get("a3")
	assert.Equal(t, model.Location{Page: 3}, *a3.Location)

	assert.Regexp(t, `^art-[0-9a-f]{12}$`, reg.Order[3])
	assert.Empty(t, reg.Duplicates)
}

func TestNormalizeArtifacts_Duplicates(t *testing.T) {
	doc := newDocument(
		nil,
		[]model.ArtifactMention{{ID: "a1"}, {ID: "a1"}},
		[]model.Page{
			{
				PageNumber:     1,
				CitationsFound: &[]model.Citation{},
				ArtifactsFound: []model.ArtifactMention{{ID: "a2"}, {ID: "a2"}},
			},
		},
		nil,
	)

	reg := NormalizeArtifacts(doc)

	assert.Equal(t, []string{"a1", "a2"}, reg.Duplicates)
	a1, _ := reg.Get("a1")
	assert.False(t, a1.HasAnchor())
}

func TestIndexCitations(t *testing.T) {
	doc := newDocument(
		nil, nil,
		[]model.Page{
			{PageNumber: 1, CitationsFound: &[]model.Citation{{CitationID: "fn12", SourceID: "s1"}}},
			{PageNumber: 2, CitationsFound: &[]model.Citation{{CitationID: "fn13"}, {CitationID: "fn14", SourceID: "s1"}}},
		},
		nil,
	)

	idx := IndexCitations(doc)

	require.Len(t, idx.All, 3)
	assert.Equal(t, 2, idx.All[1].Page)
	assert.Equal(t, []string{"fn12", "fn14"}, idx.CitationIDsFor([]string{"s1", "s9"}))
}
