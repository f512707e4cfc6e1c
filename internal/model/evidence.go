package model

// IndependenceBranch records which rule produced an evidence item's I factor
type IndependenceBranch string

const (
	BranchHumanSource       IndependenceBranch = "human_source"
	BranchTechnicalNoSource IndependenceBranch = "technical_no_source"
	BranchUnsourced         IndependenceBranch = "unsourced"
)

// Features are the five per-evidence factors, each in [0,1]
type Features struct {
	Independence   float64 `json:"I"`
	Authentication float64 `json:"A"`
	Method         float64 `json:"M"`
	Procedural     float64 `json:"P"`
	Temporal       float64 `json:"T"`
}

// Product is the weakest-link composition I·A·M·P·T
func (f Features) Product() float64 {
	return f.Independence * f.Authentication * f.Method * f.Procedural * f.Temporal
}

// EvidenceItem is one scored evidence entry. Immutable once computed.
type EvidenceItem struct {
	ID                 string             `json:"id"`
	ClaimID            string             `json:"claim_id"`
	Kind               string             `json:"kind"`
	SourceIDs          []string           `json:"source_ids"`
	ArtifactIDs        []string           `json:"artifact_ids"`
	OriginID           string             `json:"origin_id"`
	Modalities         []string           `json:"modalities"`
	Features           Features           `json:"features"`
	Anchors            []Location         `json:"anchors"`
	ProbativeWeight    float64            `json:"probative_weight"`
	IndependenceBranch IndependenceBranch `json:"independence_branch"`
	Supported          bool               `json:"supported"`
}

// EvidenceWeight is the flattened row written to evidence_weights.json
type EvidenceWeight struct {
	ID       string     `json:"id"`
	ClaimID  string     `json:"claim_id"`
	I        float64    `json:"I"`
	A        float64    `json:"A"`
	M        float64    `json:"M"`
	P        float64    `json:"P"`
	T        float64    `json:"T"`
	Weight   float64    `json:"weight"`
	OriginID string     `json:"origin_id"`
	Anchors  []Location `json:"anchors"`
}

// WeightRow flattens the item for evidence_weights.json
func (e EvidenceItem) WeightRow() EvidenceWeight {
	return EvidenceWeight{
		ID:       e.ID,
		ClaimID:  e.ClaimID,
		I:        e.Features.Independence,
		A:        e.Features.Authentication,
		M:        e.Features.Method,
		P:        e.Features.Procedural,
		T:        e.Features.Temporal,
		Weight:   e.ProbativeWeight,
		OriginID: e.OriginID,
		Anchors:  e.Anchors,
	}
}
