package model

// Report is the full scoring report. It carries no timestamps so identical
// input and profile always serialize to identical bytes.
type Report struct {
	Inputs         ReportInputs   `json:"inputs"`
	Readiness      Readiness      `json:"readiness"`
	Sources        []*Source      `json:"sources"`
	Artifacts      []*Artifact    `json:"artifacts"`
	Evidence       []EvidenceItem `json:"evidence"`
	Claims         []ClaimSummary `json:"claims"`
	ClaimScores    []ClaimScore   `json:"claim_scores"`
	DocumentScores DocumentScore  `json:"document_scores"`
	Principles     Principles     `json:"principles"`
}

// ReportInputs records what the run was given
type ReportInputs struct {
	InputPath            string `json:"input_path"`
	ConsistencyAuditPath string `json:"consistency_audit_path,omitempty"`
	Profile              string `json:"profile"`
	PublicationDate      string `json:"publication_date"`
	Title                string `json:"title,omitempty"`
}

// Readiness carries the outcome of the readiness gate into the report
type Readiness struct {
	Passed   bool      `json:"passed"`
	Warnings []Finding `json:"warnings"`
}

// Finding is a soft, non-blocking observation
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClaimSummary is the normalized view of an input claim
type ClaimSummary struct {
	ID           string     `json:"claim_id"`
	Type         ClaimType  `json:"claim_type"`
	Statement    string     `json:"statement,omitempty"`
	Actor        string     `json:"actor,omitempty"`
	Object       string     `json:"object,omitempty"`
	SalienceRank *int       `json:"salience_rank,omitempty"`
	Anchors      []Location `json:"anchors"`
	EvidenceIDs  []string   `json:"evidence_ids"`
}

// Principles documents which core principles were applied
type Principles struct {
	NonNormative  bool `json:"non_normative"` // Scores support, not truth
	Transparent   bool `json:"transparent"`   // Every intermediate is in diagnostics
	Symmetric     bool `json:"symmetric"`     // Same rules for every claim
	Deterministic bool `json:"deterministic"` // Same input, same bytes
}

// DefaultPrinciples returns the standard principles
func DefaultPrinciples() Principles {
	return Principles{
		NonNormative:  true,
		Transparent:   true,
		Symmetric:     true,
		Deterministic: true,
	}
}

// ClaimScoresFile is the shape of claim_scores.json
type ClaimScoresFile struct {
	ClaimScores []ClaimScore `json:"claim_scores"`
}

// EvidenceWeightsFile is the shape of evidence_weights.json
type EvidenceWeightsFile struct {
	EvidenceWeights []EvidenceWeight `json:"evidence_weights"`
}
