package validate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/normalize"
)

type fixture struct {
	sources   []model.SourceMention
	artifacts []model.ArtifactMention
	pages     []model.Page
	claims    []model.Claim
	audit     *model.ConsistencyAudit
}

func (f fixture) graph() Graph {
	pubDate := ""
	sources, artifacts, pages, claims := f.sources, f.artifacts, f.pages, f.claims
	doc := &model.Document{
		Metadata: &model.DocumentMetadata{PublicationDate: &pubDate},
		Stage1: &model.Stage1{
			GlobalIndices: &model.GlobalIndices{Sources: &sources, Artifacts: &artifacts},
			Pages:         &pages,
		},
		Stage2: &model.Stage2{AttributionClaims: &claims},
	}
	return Graph{
		Sources:   normalize.NewSourceNormalizer(nil).Normalize(doc),
		Artifacts: normalize.NormalizeArtifacts(doc),
		Citations: normalize.IndexCitations(doc),
		Claims:    doc.Claims(),
		Audit:     f.audit,
	}
}

func citationPage(n int, citations ...model.Citation) model.Page {
	return model.Page{PageNumber: n, CitationsFound: &citations}
}

func claimWithEvidence(id string, evidence ...model.EvidenceMention) model.Claim {
	return model.Claim{
		ID: id,
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

func TestReadiness_Clean(t *testing.T) {
	f := fixture{
		sources:   []model.SourceMention{{ID: "s1", Domain: "a.org"}, {ID: "s2", Domain: "b.org"}},
		artifacts: []model.ArtifactMention{{ID: "a1", Location: &model.Location{Page: 1}}},
		pages:     []model.Page{citationPage(1, model.Citation{CitationID: "fn1", SourceID: "s1"})},
		claims:    []model.Claim{claimWithEvidence("c1", model.EvidenceMention{SourceIDs: []string{"s1"}, ArtifactIDs: []string{"a1"}})},
	}

	findings, err := Readiness(f.graph())

	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.NotNil(t, findings)
}

func TestReadiness_AggregatesFatalProblems(t *testing.T) {
	f := fixture{
		sources: []model.SourceMention{{ID: "s1"}, {ID: "s1"}},
		artifacts: []model.ArtifactMention{
			{ID: "a1", Location: &model.Location{Page: 1}},
			{ID: "a1", Location: &model.Location{Page: 1}},
			{ID: "a2"},
		},
		pages: []model.Page{
			citationPage(4,
				model.Citation{CitationID: "fn7"},
				model.Citation{CitationID: "fn8", SourceID: "s9"},
			),
		},
	}

	findings, err := Readiness(f.graph())

	require.Error(t, err)
	assert.Nil(t, findings)

	var readinessErr *ReadinessError
	require.True(t, errors.As(err, &readinessErr))
	assert.Equal(t, []string{
		"duplicate source id: s1",
		"duplicate artifact id: a1",
		"artifact missing location anchor: a2",
		"unresolved citation fn7 on page 4",
		"citation fn8 on page 4 references unknown source id s9",
	}, readinessErr.Fatal)
	assert.Equal(t,
		"duplicate source id: s1; duplicate artifact id: a1; artifact missing location anchor: a2; "+
			"unresolved citation fn7 on page 4; citation fn8 on page 4 references unknown source id s9",
		err.Error())
}

func TestReadiness_AuditRecovery(t *testing.T) {
	recoveredAll := &model.ConsistencyAudit{Inconsistencies: model.AuditInconsistencies{
		RecoveredCount:   2,
		RecoveredIndices: []int{12, 14},
	}}
	stillMissing := &model.ConsistencyAudit{Inconsistencies: model.AuditInconsistencies{
		RecoveredCount: 2,
		After: model.AuditAfter{
			MissingFootnotesForSeenIntext: []json.RawMessage{json.RawMessage(`{"index":15}`)},
		},
	}}

	tests := []struct {
		name    string
		audit   *model.ConsistencyAudit
		wantErr bool
	}{
		{"no audit", nil, true},
		{"audit recovered everything", recoveredAll, false},
		{"audit left references missing", stillMissing, true},
		{"audit recovered nothing", &model.ConsistencyAudit{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fixture{
				sources: []model.SourceMention{{ID: "s1"}},
				pages:   []model.Page{citationPage(2, model.Citation{CitationID: "fn12"})},
				claims:  []model.Claim{claimWithEvidence("c1")},
				audit:   tt.audit,
			}

			findings, err := Readiness(f.graph())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unresolved citation fn12 on page 2")
				return
			}
			require.NoError(t, err)
			require.Len(t, findings, 1)
			assert.Equal(t, CodeCitationRecovered, findings[0].Code)
		})
	}
}

func TestReadiness_UnknownSourceAlwaysFatal(t *testing.T) {
	f := fixture{
		pages: []model.Page{citationPage(1, model.Citation{CitationID: "fn1", SourceID: "ghost"})},
		audit: &model.ConsistencyAudit{Inconsistencies: model.AuditInconsistencies{RecoveredCount: 5}},
	}

	_, err := Readiness(f.graph())

	require.Error(t, err)
	assert.Equal(t, "citation fn1 on page 1 references unknown source id ghost", err.Error())
}

func TestReadiness_SoftFindings(t *testing.T) {
	f := fixture{
		sources: []model.SourceMention{
			{ID: "s1", Domain: "wire.example.com"},
			{ID: "s2", Domain: "news.example.com"},
			{ID: "s3", Domain: "other.org"},
		},
		claims: []model.Claim{claimWithEvidence("c1", model.EvidenceMention{
			SourceIDs:   []string{"s1", "s404"},
			ArtifactIDs: []string{"a404"},
		})},
	}

	findings, err := Readiness(f.graph())

	require.NoError(t, err)
	codes := make([]string, 0, len(findings))
	for _, finding := range findings {
		codes = append(codes, finding.Code)
	}
	assert.Equal(t, []string{
		CodeEvidenceUnresolvedSource,
		CodeEvidenceUnresolvedArtifact,
		CodeSourceOriginDuplication,
	}, codes)
}

func TestReadiness_NoClaims(t *testing.T) {
	findings, err := Readiness(fixture{}.graph())

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, CodeNoClaims, findings[0].Code)
}
