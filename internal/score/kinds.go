package score

import "strings"

// Evidence kinds are free text in the input; they are normalized to
// lowercase snake_case before any lookup.
func normalizeKind(raw string) string {
	kind := strings.ToLower(strings.TrimSpace(raw))
	kind = strings.Join(strings.FieldsFunc(kind, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/'
	}), "_")
	if kind == "" {
		return "other"
	}
	return kind
}

var technicalKinds = map[string]bool{
	"url":            true,
	"domain":         true,
	"ip":             true,
	"ip_address":     true,
	"ipv4":           true,
	"ipv6":           true,
	"hash":           true,
	"email":          true,
	"email_address":  true,
	"certificate":    true,
	"registry_key":   true,
	"file_path":      true,
	"file_name":      true,
	"mutex":          true,
	"wallet_address": true,
	"asn":            true,
}

// isTechnicalKind reports whether evidence of this kind is a machine
// artifact that can stand without a human source
func isTechnicalKind(kind string) bool {
	return technicalKinds[kind] || strings.HasPrefix(kind, "hash_")
}

// methodBase is the M base per evidence kind; hashes rank highest
var methodBase = map[string]float64{
	"hash":              0.85,
	"certificate":       0.80,
	"network_capture":   0.78,
	"court_record":      0.75,
	"forensic_report":   0.75,
	"log_entry":         0.72,
	"satellite_imagery": 0.72,
	"official_record":   0.70,
	"ip":                0.65,
	"ip_address":        0.65,
	"ipv4":              0.65,
	"ipv6":              0.65,
	"domain":            0.62,
	"url":               0.60,
	"document":          0.58,
	"video":             0.58,
	"email":             0.55,
	"email_address":     0.55,
	"photo":             0.55,
	"testimony":         0.45,
	"witness_statement": 0.45,
	"interview":         0.45,
	"ngo_report":        0.45,
	"statement":         0.40,
	"media_report":      0.40,
	"social_media":      0.35,
	"other":             0.30,
}

func methodBaseFor(kind string) float64 {
	if v, ok := methodBase[kind]; ok {
		return v
	}
	switch {
	case strings.HasPrefix(kind, "hash_"):
		return methodBase["hash"]
	case strings.HasPrefix(kind, "file_"):
		return 0.60
	}
	return methodBase["other"]
}

// reportDerivedKinds are second-hand write-ups rather than primary material
var reportDerivedKinds = map[string]bool{
	"media_report":     true,
	"ngo_report":       true,
	"news_article":     true,
	"press_release":    true,
	"secondary_report": true,
	"report":           true,
}

// Modalities group evidence kinds into independent channels of proof
const (
	ModalityTechnical   = "technical"
	ModalityForensic    = "forensic"
	ModalityDocumentary = "documentary"
	ModalityTestimonial = "testimonial"
	ModalityImagery     = "imagery"
	ModalityOther       = "other"
)

var kindModality = map[string]string{
	"network_capture":   ModalityForensic,
	"forensic_report":   ModalityForensic,
	"log_entry":         ModalityForensic,
	"malware_sample":    ModalityForensic,
	"document":          ModalityDocumentary,
	"official_record":   ModalityDocumentary,
	"court_record":      ModalityDocumentary,
	"media_report":      ModalityDocumentary,
	"ngo_report":        ModalityDocumentary,
	"news_article":      ModalityDocumentary,
	"press_release":     ModalityDocumentary,
	"secondary_report":  ModalityDocumentary,
	"report":            ModalityDocumentary,
	"testimony":         ModalityTestimonial,
	"witness_statement": ModalityTestimonial,
	"interview":         ModalityTestimonial,
	"statement":         ModalityTestimonial,
	"photo":             ModalityImagery,
	"video":             ModalityImagery,
	"satellite_imagery": ModalityImagery,
}

// modalitiesFor returns explicit modalities when given, else the kind's modality
func modalitiesFor(kind string, explicit []string) []string {
	var out []string
	for _, m := range explicit {
		out = appendUnique(out, strings.ToLower(strings.TrimSpace(m)))
	}
	if len(out) > 0 {
		return out
	}
	if isTechnicalKind(kind) {
		return []string{ModalityTechnical}
	}
	if m, ok := kindModality[kind]; ok {
		return []string{m}
	}
	return []string{ModalityOther}
}

// Keyword sets matched case-insensitively against evidence notes
var (
	crossValidationTerms = []string{"cross-vendor", "independent review", "joint advisory", "replicated"}
	lineageTerms         = []string{"lineage", "derived from", "exported from", "extracted from", "original file", "chain of custody", "hash of"}
	methodTerms          = []string{"methodology", "method", "forensic", "analysis", "reverse engineer", "sandbox", "telemetry", "sinkhole", "passive dns"}
	caveatTerms          = []string{"caveat", "limitation", "uncertain", "cannot rule out", "low confidence", "moderate confidence", "unverified", "however"}
)

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
