package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/normalize"
	"github.com/ppiankov/evidentia/internal/profile"
)

type docFixture struct {
	pubDate   string
	sources   []model.SourceMention
	artifacts []model.ArtifactMention
	pages     []model.Page
	claims    []model.Claim
	audit     *model.ConsistencyAudit
}

func (f docFixture) document() *model.Document {
	pubDate := f.pubDate
	sources := append([]model.SourceMention{}, f.sources...)
	artifacts := append([]model.ArtifactMention{}, f.artifacts...)
	pages := append([]model.Page{}, f.pages...)
	claims := append([]model.Claim{}, f.claims...)
	return &model.Document{
		Metadata: &model.DocumentMetadata{PublicationDate: &pubDate},
		Stage1: &model.Stage1{
			GlobalIndices: &model.GlobalIndices{Sources: &sources, Artifacts: &artifacts},
			Pages:         &pages,
		},
		Stage2: &model.Stage2{AttributionClaims: &claims},
	}
}

func (f docFixture) input() Input {
	doc := f.document()
	return Input{
		Sources:         normalize.NewSourceNormalizer(nil).Normalize(doc),
		Artifacts:       normalize.NormalizeArtifacts(doc),
		Citations:       normalize.IndexCitations(doc),
		Claims:          doc.Claims(),
		Audit:           f.audit,
		PublicationDate: doc.PublicationDateString(),
	}
}

func (f docFixture) score(t *testing.T, profileName string) *Result {
	t.Helper()
	result, err := NewScorer(profile.Resolve(profileName), 4).Score(context.Background(), f.input())
	require.NoError(t, err)
	return result
}

func newClaim(id string, evidence ...model.EvidenceMention) model.Claim {
	return model.Claim{
		ID:   id,
		Type: model.ClaimTypeAttribution,
		SixC: &model.SixC{
			ChainOfCustody: &model.CustodyBlock{EvidenceItems: evidence},
			Credibility:    &model.CredibilityBlock{},
			Corroboration:  &model.CorroborationBlock{},
			Coherence:      &model.CoherenceBlock{},
			Confidence:     &model.ScoredBlock{},
			Compliance:     &model.ScoredBlock{},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
