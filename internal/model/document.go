package model

import "fmt"

// Document is the structured extraction produced by the upstream parsing stage.
// Pointer fields are required keys; CheckRequired reports the first one missing.
type Document struct {
	Metadata *DocumentMetadata `json:"document_metadata"`
	Stage1   *Stage1           `json:"stage1"`
	Stage2   *Stage2           `json:"stage2"`
}

// DocumentMetadata describes the scored document itself
type DocumentMetadata struct {
	Title           string   `json:"title,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	Authors         []string `json:"authors,omitempty"`
	PublicationDate *string  `json:"publication_date"`
}

// Stage1 holds the page parse: global indices and per-page findings
type Stage1 struct {
	GlobalIndices *GlobalIndices `json:"global_indices"`
	Pages         *[]Page        `json:"pages"`
}

// GlobalIndices lists every source and artifact the parser indexed document-wide
type GlobalIndices struct {
	Sources   *[]SourceMention   `json:"sources"`
	Artifacts *[]ArtifactMention `json:"artifacts"`
}

// Page is one parsed page
type Page struct {
	PageNumber     int               `json:"page_number"`
	CitationsFound *[]Citation       `json:"citations_found"`
	ArtifactsFound []ArtifactMention `json:"artifacts_found,omitempty"`
}

// Citation is an in-text reference found on a page. An empty SourceID means
// the parser could not resolve it.
type Citation struct {
	CitationID string `json:"citation_id"`
	SourceID   string `json:"source_id,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Stage2 holds the attribution claims
type Stage2 struct {
	AttributionClaims *[]Claim `json:"attribution_claims"`
}

// SourceMention is a raw source reference as it appears in the extraction
type SourceMention struct {
	ID                   string   `json:"id,omitempty"`
	Kind                 string   `json:"kind,omitempty"`
	Title                string   `json:"title,omitempty"`
	Authors              []string `json:"authors,omitempty"`
	Org                  string   `json:"org,omitempty"`
	Publisher            string   `json:"publisher,omitempty"`
	Year                 int      `json:"year,omitempty"`
	Date                 string   `json:"date,omitempty"`
	URL                  string   `json:"url,omitempty"`
	Domain               string   `json:"domain,omitempty"`
	LitigationPrepared   bool     `json:"litigation_prepared,omitempty"`
	SingleSource         bool     `json:"single_source,omitempty"`
	StatedConflict       bool     `json:"stated_conflict,omitempty"`
	CountervailingDetail bool     `json:"countervailing_detail,omitempty"`
	Cites                []string `json:"cites,omitempty"`
}

// ArtifactMention is a raw artifact reference
type ArtifactMention struct {
	ID            string    `json:"id,omitempty"`
	Type          string    `json:"type,omitempty"`
	Value         string    `json:"value,omitempty"`
	Location      *Location `json:"location,omitempty"`
	ExtractedFrom string    `json:"extracted_from,omitempty"`
	Confidence    float64   `json:"confidence,omitempty"`
}

// Location anchors an artifact or evidence item inside the document
type Location struct {
	Page    int    `json:"page"`
	Block   int    `json:"block,omitempty"`
	Kind    string `json:"kind,omitempty"`
	TableID string `json:"table_id,omitempty"`
}

// StructuralError reports a required key missing from the input
type StructuralError struct {
	Path string
}

func (e *StructuralError) Error() string {
	return "missing required field: " + e.Path
}

// CheckRequired verifies every required key of the input shape is present.
// Nothing is defaulted here: a missing key is a fault.
func (d *Document) CheckRequired() error {
	switch {
	case d.Metadata == nil:
		return &StructuralError{Path: "document_metadata"}
	case d.Metadata.PublicationDate == nil:
		return &StructuralError{Path: "document_metadata.publication_date"}
	case d.Stage1 == nil:
		return &StructuralError{Path: "stage1"}
	case d.Stage1.GlobalIndices == nil:
		return &StructuralError{Path: "stage1.global_indices"}
	case d.Stage1.GlobalIndices.Sources == nil:
		return &StructuralError{Path: "stage1.global_indices.sources"}
	case d.Stage1.GlobalIndices.Artifacts == nil:
		return &StructuralError{Path: "stage1.global_indices.artifacts"}
	case d.Stage1.Pages == nil:
		return &StructuralError{Path: "stage1.pages"}
	case d.Stage2 == nil:
		return &StructuralError{Path: "stage2"}
	case d.Stage2.AttributionClaims == nil:
		return &StructuralError{Path: "stage2.attribution_claims"}
	}

	for i, page := range *d.Stage1.Pages {
		if page.CitationsFound == nil {
			return &StructuralError{Path: fmt.Sprintf("stage1.pages[%d].citations_found", i)}
		}
	}

	for i, claim := range *d.Stage2.AttributionClaims {
		if err := claim.checkRequired(fmt.Sprintf("stage2.attribution_claims[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

// PublicationDateString returns the raw publication date ("" when unknown)
func (d *Document) PublicationDateString() string {
	if d.Metadata == nil || d.Metadata.PublicationDate == nil {
		return ""
	}
	return *d.Metadata.PublicationDate
}

// GlobalSources returns the global source index (empty when absent)
func (d *Document) GlobalSources() []SourceMention {
	if d.Stage1 == nil || d.Stage1.GlobalIndices == nil || d.Stage1.GlobalIndices.Sources == nil {
		return nil
	}
	return *d.Stage1.GlobalIndices.Sources
}

// GlobalArtifacts returns the global artifact index (empty when absent)
func (d *Document) GlobalArtifacts() []ArtifactMention {
	if d.Stage1 == nil || d.Stage1.GlobalIndices == nil || d.Stage1.GlobalIndices.Artifacts == nil {
		return nil
	}
	return *d.Stage1.GlobalIndices.Artifacts
}

// Pages returns the parsed pages (empty when absent)
func (d *Document) Pages() []Page {
	if d.Stage1 == nil || d.Stage1.Pages == nil {
		return nil
	}
	return *d.Stage1.Pages
}

// Claims returns the attribution claims (empty when absent)
func (d *Document) Claims() []Claim {
	if d.Stage2 == nil || d.Stage2.AttributionClaims == nil {
		return nil
	}
	return *d.Stage2.AttributionClaims
}

// Citations returns the page's citations (empty when absent)
func (p Page) Citations() []Citation {
	if p.CitationsFound == nil {
		return nil
	}
	return *p.CitationsFound
}
