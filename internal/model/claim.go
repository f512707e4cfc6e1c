package model

// Claim is an attribution claim read from stage2. It is never mutated.
type Claim struct {
	ID           string     `json:"claim_id"`
	Type         ClaimType  `json:"claim_type,omitempty"`
	Statement    string     `json:"statement,omitempty"`
	Actor        string     `json:"actor,omitempty"`
	Object       string     `json:"object,omitempty"`
	SalienceRank *int       `json:"salience_rank,omitempty"`
	TimeRange    *TimeRange `json:"time_range,omitempty"`
	Anchors      []Location `json:"anchors,omitempty"`
	SixC         *SixC      `json:"six_c"`
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeAttribution ClaimType = "attribution" // Who did something
	ClaimTypeOrigin      ClaimType = "origin"      // Where something came from
	ClaimTypeCausation   ClaimType = "causation"   // What caused an effect
	ClaimTypeIntent      ClaimType = "intent"      // Why an actor acted
	ClaimTypeIdentity    ClaimType = "identity"    // Who an actor is
	ClaimTypeExistence   ClaimType = "existence"   // That something exists or happened
	ClaimTypeAuthority   ClaimType = "authority"   // Legal or official status
	ClaimTypeOther       ClaimType = "other"
)

// TimeRange is the period a claim is about
type TimeRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// SixC is the six-axis feature block attached to each claim
type SixC struct {
	ChainOfCustody *CustodyBlock       `json:"chain_of_custody"`
	Credibility    *CredibilityBlock   `json:"credibility"`
	Corroboration  *CorroborationBlock `json:"corroboration"`
	Coherence      *CoherenceBlock     `json:"coherence"`
	Confidence     *ScoredBlock        `json:"confidence"`
	Compliance     *ScoredBlock        `json:"compliance"`
}

// CustodyBlock carries the claim's evidence and chain disclosures
type CustodyBlock struct {
	EvidenceItems   []EvidenceMention `json:"evidence_items,omitempty"`
	Limitations     []string          `json:"limitations,omitempty"`
	Transformations []string          `json:"transformations,omitempty"`
}

// CredibilityBlock lists sources the extraction attached to the claim
type CredibilityBlock struct {
	Sources []SourceMention `json:"sources,omitempty"`
}

// CorroborationBlock lists claim-level corroboration modalities
type CorroborationBlock struct {
	Modalities []string `json:"modalities,omitempty"`
}

// CoherenceBlock is the claim's internal-consistency assessment
type CoherenceBlock struct {
	Score                 *float64 `json:"score,omitempty"`
	AlternativeHypotheses []string `json:"alternative_hypotheses,omitempty"`
}

// ScoredBlock is a claim-level feature carrying a single score
type ScoredBlock struct {
	Score *float64 `json:"score,omitempty"`
}

// EvidenceMention is a raw evidence entry inside a claim's custody block
type EvidenceMention struct {
	Kind              string             `json:"evidence_kind,omitempty"`
	Description       string             `json:"description,omitempty"`
	SourceIDs         []string           `json:"source_ids,omitempty"`
	ArtifactIDs       []string           `json:"artifact_ids,omitempty"`
	CollectionContext *CollectionContext `json:"collection_context,omitempty"`
	IntegrityControls []string           `json:"integrity_controls,omitempty"`
	TamperingRisks    []string           `json:"tampering_risks,omitempty"`
	Transformations   []string           `json:"transformations,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	Anchors           []Location         `json:"anchors,omitempty"`
	Modalities        []string           `json:"modalities,omitempty"`
}

// CollectionContext describes how an evidence item was collected
type CollectionContext struct {
	Collector   string `json:"collector,omitempty"`
	Method      string `json:"method,omitempty"`
	CollectedAt string `json:"collected_at,omitempty"`
	Location    string `json:"location,omitempty"`
	Tool        string `json:"tool,omitempty"`
}

// defaultClaimFeature is used when a claim-level block carries no score
const defaultClaimFeature = 0.5

// PopulatedFields counts the non-empty collection-context fields
func (c *CollectionContext) PopulatedFields() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, v := range []string{c.Collector, c.Method, c.CollectedAt, c.Location, c.Tool} {
		if v != "" {
			n++
		}
	}
	return n
}

// Evidence returns the claim's evidence mentions (empty when absent)
func (c Claim) Evidence() []EvidenceMention {
	if c.SixC == nil || c.SixC.ChainOfCustody == nil {
		return nil
	}
	return c.SixC.ChainOfCustody.EvidenceItems
}

// CredibilitySources returns the sources attached to the credibility block
func (c Claim) CredibilitySources() []SourceMention {
	if c.SixC == nil || c.SixC.Credibility == nil {
		return nil
	}
	return c.SixC.Credibility.Sources
}

// Limitations returns the disclosed chain limitations
func (c Claim) Limitations() []string {
	if c.SixC == nil || c.SixC.ChainOfCustody == nil {
		return nil
	}
	return c.SixC.ChainOfCustody.Limitations
}

// Transformations returns the disclosed chain transformations
func (c Claim) Transformations() []string {
	if c.SixC == nil || c.SixC.ChainOfCustody == nil {
		return nil
	}
	return c.SixC.ChainOfCustody.Transformations
}

// CorroborationModalities returns modalities named at claim level
func (c Claim) CorroborationModalities() []string {
	if c.SixC == nil || c.SixC.Corroboration == nil {
		return nil
	}
	return c.SixC.Corroboration.Modalities
}

// AlternativeHypotheses returns the coherence block's alternatives
func (c Claim) AlternativeHypotheses() []string {
	if c.SixC == nil || c.SixC.Coherence == nil {
		return nil
	}
	return c.SixC.Coherence.AlternativeHypotheses
}

// CoherenceScore returns the coherence feature (0.5 when unscored)
func (c Claim) CoherenceScore() float64 {
	if c.SixC == nil || c.SixC.Coherence == nil || c.SixC.Coherence.Score == nil {
		return defaultClaimFeature
	}
	return *c.SixC.Coherence.Score
}

// ConfidenceScore returns the confidence-discipline feature (0.5 when unscored)
func (c Claim) ConfidenceScore() float64 {
	if c.SixC == nil {
		return defaultClaimFeature
	}
	return c.SixC.Confidence.value()
}

// ComplianceScore returns the compliance feature (0.5 when unscored)
func (c Claim) ComplianceScore() float64 {
	if c.SixC == nil {
		return defaultClaimFeature
	}
	return c.SixC.Compliance.value()
}

func (b *ScoredBlock) value() float64 {
	if b == nil || b.Score == nil {
		return defaultClaimFeature
	}
	return *b.Score
}

func (c Claim) checkRequired(path string) error {
	switch {
	case c.SixC == nil:
		return &StructuralError{Path: path + ".six_c"}
	case c.SixC.ChainOfCustody == nil:
		return &StructuralError{Path: path + ".six_c.chain_of_custody"}
	case c.SixC.Credibility == nil:
		return &StructuralError{Path: path + ".six_c.credibility"}
	case c.SixC.Corroboration == nil:
		return &StructuralError{Path: path + ".six_c.corroboration"}
	case c.SixC.Coherence == nil:
		return &StructuralError{Path: path + ".six_c.coherence"}
	case c.SixC.Confidence == nil:
		return &StructuralError{Path: path + ".six_c.confidence"}
	case c.SixC.Compliance == nil:
		return &StructuralError{Path: path + ".six_c.compliance"}
	}
	return nil
}
