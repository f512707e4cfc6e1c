package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/normalize"
)

// Finding is a soft, non-blocking readiness observation
type Finding = model.Finding

// Soft finding codes
const (
	CodeCitationRecovered          = "citation_recovered_by_audit"
	CodeEvidenceUnresolvedSource   = "evidence_unresolved_source"
	CodeEvidenceUnresolvedArtifact = "evidence_unresolved_artifact"
	CodeSourceOriginDuplication    = "source_origin_duplication"
	CodeNoClaims                   = "no_claims"
)

// ReadinessError aggregates every fatal readiness problem of a document
type ReadinessError struct {
	Fatal []string
}

func (e *ReadinessError) Error() string {
	return strings.Join(e.Fatal, "; ")
}

// Graph is the normalized document the readiness gate inspects
type Graph struct {
	Sources   *normalize.SourceRegistry
	Artifacts *normalize.ArtifactRegistry
	Citations *normalize.CitationIndex
	Claims    []model.Claim
	Audit     *model.ConsistencyAudit // optional
}

// Readiness checks the normalized graph before any scoring runs.
// Every fatal condition is collected; if any exist a *ReadinessError is
// returned and the findings must be discarded.
func Readiness(g Graph) ([]Finding, error) {
	var fatal []string
	findings := []Finding{}

	// 1. Unique ids
	for _, id := range g.Sources.Duplicates {
		fatal = append(fatal, "duplicate source id: "+id)
	}
	for _, id := range g.Artifacts.Duplicates {
		fatal = append(fatal, "duplicate artifact id: "+id)
	}

	// 2. Every artifact is anchored
	for _, a := range g.Artifacts.All() {
		if !a.HasAnchor() {
			fatal = append(fatal, "artifact missing location anchor: "+a.ID)
		}
	}

	// 3. Page citations resolve, or the audit recovered all of them
	recovered := 0
	for _, c := range g.Citations.All {
		if c.SourceID == "" {
			if g.Audit.RecoveredAll() {
				recovered++
				continue
			}
			fatal = append(fatal, fmt.Sprintf("unresolved citation %s on page %d", c.CitationID, c.Page))
			continue
		}
		if _, ok := g.Sources.Get(c.SourceID); !ok {
			fatal = append(fatal, fmt.Sprintf("citation %s on page %d references unknown source id %s", c.CitationID, c.Page, c.SourceID))
		}
	}

	if len(fatal) > 0 {
		return nil, &ReadinessError{Fatal: fatal}
	}

	if recovered > 0 {
		findings = append(findings, Finding{
			Code:    CodeCitationRecovered,
			Message: fmt.Sprintf("%d unresolved citation(s) recovered by consistency audit (%d recovered indices)", recovered, len(g.Audit.RecoveredIndices())),
		})
	}

	findings = append(findings, evidenceFindings(g)...)

	if f, ok := originDuplication(g.Sources); ok {
		findings = append(findings, f)
	}

	if len(g.Claims) == 0 {
		findings = append(findings, Finding{Code: CodeNoClaims, Message: "document has no attribution claims"})
	}

	return findings, nil
}

// evidenceFindings reports evidence references that do not resolve. They
// are scored as unsupported rather than rejected.
func evidenceFindings(g Graph) []Finding {
	var findings []Finding
	for _, claim := range g.Claims {
		for i, ev := range claim.Evidence() {
			for _, id := range ev.SourceIDs {
				if _, ok := g.Sources.Get(id); !ok {
					findings = append(findings, Finding{
						Code:    CodeEvidenceUnresolvedSource,
						Message: fmt.Sprintf("claim %s evidence #%d references unknown source id %s", claim.ID, i+1, id),
					})
				}
			}
			for _, id := range ev.ArtifactIDs {
				if _, ok := g.Artifacts.Get(id); !ok {
					findings = append(findings, Finding{
						Code:    CodeEvidenceUnresolvedArtifact,
						Message: fmt.Sprintf("claim %s evidence #%d references unknown artifact id %s", claim.ID, i+1, id),
					})
				}
			}
		}
	}
	return findings
}

// originDuplication flags documents where more than half of the sources
// share their origin with at least one other source
func originDuplication(reg *normalize.SourceRegistry) (Finding, bool) {
	if reg.Len() < 2 {
		return Finding{}, false
	}

	perOrigin := make(map[string]int)
	for _, src := range reg.All() {
		perOrigin[src.OriginKey()]++
	}

	shared := 0
	for _, n := range perOrigin {
		if n > 1 {
			shared += n
		}
	}

	ratio := float64(shared) / float64(reg.Len())
	if ratio <= 0.5 {
		return Finding{}, false
	}

	return Finding{
		Code:    CodeSourceOriginDuplication,
		Message: fmt.Sprintf("%d of %d sources share an origin with another source (%.0f%%); %d distinct origins", shared, reg.Len(), ratio*100, len(perOrigin)),
	}, true
}
