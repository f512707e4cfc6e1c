package model

import "strings"

// SourceKind classifies who produced a source
type SourceKind string

const (
	KindCourt      SourceKind = "court"      // Judgments, court records
	KindAcademic   SourceKind = "academic"   // Peer-reviewed or university research
	KindNGO        SourceKind = "ngo"        // Non-governmental organizations
	KindGovernment SourceKind = "government" // Official government publications
	KindVendor     SourceKind = "vendor"     // Commercial threat-intel and forensic vendors
	KindMedia      SourceKind = "media"      // News outlets
	KindUnknown    SourceKind = "unknown"
)

// SourceKinds lists every kind in hierarchy order
var SourceKinds = []SourceKind{KindCourt, KindGovernment, KindAcademic, KindNGO, KindVendor, KindMedia, KindUnknown}

// ParseSourceKind normalizes a raw kind string. Unrecognized kinds map to unknown.
func ParseSourceKind(raw string) SourceKind {
	switch SourceKind(raw) {
	case KindCourt, KindAcademic, KindNGO, KindGovernment, KindVendor, KindMedia:
		return SourceKind(raw)
	default:
		return KindUnknown
	}
}

// IsHighTrust reports whether the kind is government, court or academic
func (k SourceKind) IsHighTrust() bool {
	return k == KindGovernment || k == KindCourt || k == KindAcademic
}

// Source is a normalized source: every mention of one id merged together.
// Only IsSingleSource changes after the readiness gate.
type Source struct {
	ID                   string     `json:"id"`
	Kind                 SourceKind `json:"kind"`
	KindInferred         bool       `json:"kind_inferred,omitempty"`
	Title                string     `json:"title,omitempty"`
	Authors              []string   `json:"authors"`
	Org                  string     `json:"org,omitempty"`
	Publisher            string     `json:"publisher,omitempty"`
	Year                 int        `json:"year,omitempty"`
	Date                 string     `json:"date,omitempty"`
	URL                  string     `json:"url,omitempty"`
	Domain               string     `json:"domain,omitempty"`
	LitigationPrepared   bool       `json:"is_litigation_prepared"`
	IsSingleSource       bool       `json:"is_single_source"`
	StatedConflict       bool       `json:"has_stated_conflict"`
	CountervailingDetail bool       `json:"has_countervailing_detail"`
	Cites                []string   `json:"cites"`
	OriginSignature      []string   `json:"origin_signature"`
	Mentions             int        `json:"mentions"`
}

// OriginKey joins the origin signature into a single comparable key
func (s *Source) OriginKey() string {
	return strings.Join(s.OriginSignature, "+")
}
