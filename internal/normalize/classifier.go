package normalize

import (
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/util"
)

// KindClassifier infers a source kind from its domain for sources that arrive without one
type KindClassifier struct {
	domainMap map[string]model.SourceKind
	lists     []kindList
}

type kindList struct {
	kind    model.SourceKind
	domains []string
}

// NewKindClassifier creates a classifier from the configured domain lists
func NewKindClassifier(config *model.KindConfig) *KindClassifier {
	if config == nil {
		defaults := model.DefaultKindConfig()
		config = &defaults
	}

	classifier := &KindClassifier{
		domainMap: make(map[string]model.SourceKind),
		lists: []kindList{
			{kind: model.KindCourt, domains: lowerAll(config.CourtDomains)},
			{kind: model.KindGovernment, domains: lowerAll(config.GovernmentDomains)},
			{kind: model.KindAcademic, domains: lowerAll(config.AcademicDomains)},
			{kind: model.KindNGO, domains: lowerAll(config.NGODomains)},
			{kind: model.KindVendor, domains: lowerAll(config.VendorDomains)},
			{kind: model.KindMedia, domains: lowerAll(config.MediaDomains)},
		},
	}

	for host, kind := range config.DomainMap {
		classifier.domainMap[strings.ToLower(host)] = model.ParseSourceKind(strings.ToLower(kind))
	}

	return classifier
}

// Classify maps a domain to a source kind, or unknown when nothing matches
func (c *KindClassifier) Classify(domain string) model.SourceKind {
	host := strings.ToLower(strings.TrimSpace(domain))
	if host == "" {
		return model.KindUnknown
	}

	// Explicit mappings win
	if kind, ok := c.domainMap[host]; ok {
		return kind
	}

	// Configured lists, in hierarchy order, matching subdomains too
	for _, list := range c.lists {
		for _, d := range list.domains {
			if util.HasDomainSuffix(host, d) {
				return list.kind
			}
		}
	}

	// Public-sector and academic TLD conventions
	switch {
	case strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") || strings.Contains(host, ".gov."):
		return model.KindGovernment
	case strings.HasSuffix(host, ".edu") || strings.Contains(host, ".edu.") || strings.Contains(host, ".ac."):
		return model.KindAcademic
	}

	return model.KindUnknown
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
