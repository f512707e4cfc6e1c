package model

// AxisScore is a [0,1] score with its coarse 0-5 band
type AxisScore struct {
	Score float64 `json:"score"`
	Band  int     `json:"band_0_5"`
}

// Core3C holds the three evidentiary axes
type Core3C struct {
	ChainOfCustody AxisScore `json:"chain_of_custody"`
	Credibility    AxisScore `json:"credibility"`
	Corroboration  AxisScore `json:"corroboration"`
}

// SixAxis extends the core axes with the claim-level features
type SixAxis struct {
	ChainOfCustody AxisScore `json:"chain_of_custody"`
	Credibility    AxisScore `json:"credibility"`
	Corroboration  AxisScore `json:"corroboration"`
	Coherence      AxisScore `json:"coherence"`
	Confidence     AxisScore `json:"confidence"`
	Compliance     AxisScore `json:"compliance"`
}

// PenaltyName identifies a detected claim-level weakness
type PenaltyName string

const (
	PenaltySingleSource       PenaltyName = "single_source"
	PenaltyCircularityRisk    PenaltyName = "circularity_risk"
	PenaltyUnauthenticated    PenaltyName = "unauthenticated"
	PenaltyUntested           PenaltyName = "untested"
	PenaltyRecoveredReference PenaltyName = "recovered_reference"
)

// AppliedPenalty records the base factor and its profile-adjusted effect
type AppliedPenalty struct {
	Name      PenaltyName `json:"name"`
	Factor    float64     `json:"factor"`
	Power     float64     `json:"power"`
	Effective float64     `json:"effective"`
}

// ClaimCounts summarizes what a claim was scored on
type ClaimCounts struct {
	EvidenceItems int `json:"evidence_items"`
	Sources       int `json:"sources"`
	Origins       int `json:"origins"`
	Artifacts     int `json:"artifacts"`
	Modalities    int `json:"modalities"`
	Anchors       int `json:"anchors"`
}

// ClaimScore is the single scoring result per claim
type ClaimScore struct {
	ClaimID           string           `json:"claim_id"`
	ClaimType         ClaimType        `json:"claim_type"`
	SalienceRank      *int             `json:"salience_rank,omitempty"`
	Counts            ClaimCounts      `json:"counts"`
	SourceIDs         []string         `json:"source_ids"`
	EvidenceIDs       []string         `json:"evidence_ids"`
	Core3C            Core3C           `json:"core_3c"`
	SixAxis           SixAxis          `json:"six_axis"`
	SupportCoverage   float64          `json:"support_coverage"`
	BaseClaimScore    float64          `json:"base_claim_score"`
	Penalties         []PenaltyName    `json:"penalties"`
	PenaltyDetail     []AppliedPenalty `json:"penalty_detail"`
	PenaltyMultiplier float64          `json:"penalty_multiplier"`
	FinalScore        float64          `json:"final_score"`
	FinalBand         int              `json:"final_band_0_5"`
	Diagnostics       ClaimDiagnostics `json:"diagnostics"`
}

// OriginGroup is one evidentiary channel inside the convergence computation
type OriginGroup struct {
	OriginID    string   `json:"origin_id"`
	EvidenceIDs []string `json:"evidence_ids"`
	Combined    float64  `json:"combined"`
}

// ClaimDiagnostics exposes every intermediate quantity behind a claim score
type ClaimDiagnostics struct {
	Convergence                float64                  `json:"convergence"`
	OriginGroups               []OriginGroup            `json:"origin_groups"`
	MeanFeatures               Features                 `json:"mean_features"`
	DataContributionMultiplier float64                  `json:"data_contribution_multiplier"`
	Custody                    CustodyDiagnostics       `json:"custody"`
	Credibility                CredibilityDiagnostics   `json:"credibility"`
	Corroboration              CorroborationDiagnostics `json:"corroboration"`
}

// CustodyDiagnostics breaks down the chain-of-custody axis
type CustodyDiagnostics struct {
	ProvenanceQuality          float64 `json:"provenance_quality"`
	ArtifactTraceability       float64 `json:"artifact_traceability"`
	AnchorQuality              float64 `json:"anchor_quality"`
	ChainDisclosureQuality     float64 `json:"chain_disclosure_quality"`
	ClaimAnchorAlignment       float64 `json:"claim_anchor_alignment"`
	ArtifactProximityHierarchy float64 `json:"artifact_proximity_hierarchy"`
	GeometricComposite         float64 `json:"geometric_composite"`
	IntegrityMultiplier        float64 `json:"integrity_multiplier"`
	ContextMultiplier          float64 `json:"context_multiplier"`
	LineageMultiplier          float64 `json:"lineage_multiplier"`
	ReportDerivationMultiplier float64 `json:"report_derivation_multiplier"`
	ProximityMultiplier        float64 `json:"proximity_multiplier"`
}

// CredibilityDiagnostics breaks down the credibility axis
type CredibilityDiagnostics struct {
	SourceIndependence float64 `json:"source_independence"`
	ClaimDiscipline    float64 `json:"claim_discipline"`
	SingleOriginDamped bool    `json:"single_origin_damped"`
}

// CorroborationDiagnostics breaks down the corroboration axis
type CorroborationDiagnostics struct {
	OriginBonus        float64 `json:"origin_bonus"`
	ModalityBonus      float64 `json:"modality_bonus"`
	NatureFactor       float64 `json:"nature_factor"`
	CoverageMultiplier float64 `json:"coverage_multiplier"`
}

// Headline identifies the claim that represents the document
type Headline struct {
	ClaimID    string  `json:"claim_id"`
	SelectedBy string  `json:"selected_by"`
	Vector     SixAxis `json:"vector"`
}

// AxisMedians are per-axis medians across all claims
type AxisMedians struct {
	ChainOfCustody float64 `json:"chain_of_custody"`
	Credibility    float64 `json:"credibility"`
	Corroboration  float64 `json:"corroboration"`
	Coherence      float64 `json:"coherence"`
	Confidence     float64 `json:"confidence"`
	Compliance     float64 `json:"compliance"`
}

// GateValues holds the three seriousness measures
type GateValues struct {
	MeanFinalScore      float64 `json:"mean_final_score"`
	MedianCredibility   float64 `json:"median_credibility"`
	MedianCorroboration float64 `json:"median_corroboration"`
}

// SeriousnessGate is the document-level pass/fail test
type SeriousnessGate struct {
	Thresholds GateValues `json:"thresholds"`
	Observed   GateValues `json:"observed"`
	Passed     bool       `json:"passed"`
}

// DocumentScore aggregates all claim scores
type DocumentScore struct {
	Profile                  string          `json:"profile"`
	ClaimCount               int             `json:"claim_count"`
	Headline                 *Headline       `json:"headline"`
	AxisMedians              AxisMedians     `json:"axis_medians"`
	OverallClaimScoreMean    float64         `json:"overall_claim_score_mean"`
	OverallClaimScoreGeomean float64         `json:"overall_claim_score_geomean"`
	SingleSourcedSourceIDs   []string        `json:"single_sourced_source_ids"`
	SeriousnessGate          SeriousnessGate `json:"seriousness_gate"`
}
