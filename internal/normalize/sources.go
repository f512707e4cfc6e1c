package normalize

import (
	"fmt"
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
	"github.com/ppiankov/evidentia/internal/util"
)

// SourceRegistry is the normalized source set of one document
type SourceRegistry struct {
	ByID       map[string]*model.Source
	Order      []string // first-seen order
	Duplicates []string // ids repeated inside the global index
}

// Get returns the source with the given id
func (r *SourceRegistry) Get(id string) (*model.Source, bool) {
	src, ok := r.ByID[id]
	return src, ok
}

// All returns every source in first-seen order
func (r *SourceRegistry) All() []*model.Source {
	out := make([]*model.Source, 0, len(r.Order))
	for _, id := range r.Order {
		out = append(out, r.ByID[id])
	}
	return out
}

// Len returns the number of distinct sources
func (r *SourceRegistry) Len() int {
	return len(r.Order)
}

// SourceNormalizer merges raw source mentions into a SourceRegistry
type SourceNormalizer struct {
	classifier *KindClassifier
}

// NewSourceNormalizer creates a normalizer that infers missing kinds with classifier
func NewSourceNormalizer(classifier *KindClassifier) *SourceNormalizer {
	if classifier == nil {
		classifier = NewKindClassifier(nil)
	}
	return &SourceNormalizer{classifier: classifier}
}

// Normalize collects every source mention from the global index and from each
// claim's credibility block, merges them by id, infers kinds and resolves
// origin signatures. It performs no I/O.
func (n *SourceNormalizer) Normalize(doc *model.Document) *SourceRegistry {
	reg := &SourceRegistry{ByID: make(map[string]*model.Source)}
	rawKinds := make(map[string]string)

	// 1. Global index: repeated ids here are duplicates
	seenGlobal := make(map[string]bool)
	flagged := make(map[string]bool)
	for i, m := range doc.GlobalSources() {
		id := m.ID
		if id == "" {
			id = syntheticID("src-", "global", fmt.Sprint(i), m.URL, m.Title)
		}
		if seenGlobal[id] && !flagged[id] {
			reg.Duplicates = append(reg.Duplicates, id)
			flagged[id] = true
		}
		seenGlobal[id] = true
		reg.add(id, m, rawKinds)
	}

	// 2. Claim credibility blocks: repeated ids are references
	for _, claim := range doc.Claims() {
		ids := CredibilitySourceIDs(claim)
		for i, m := range claim.CredibilitySources() {
			reg.add(ids[i], m, rawKinds)
		}
	}

	// 3. Kinds, then origins (origins need every domain settled)
	for _, id := range reg.Order {
		src := reg.ByID[id]
		raw := strings.ToLower(strings.TrimSpace(rawKinds[id]))
		if raw == "" {
			src.Kind = n.classifier.Classify(src.Domain)
			src.KindInferred = src.Kind != model.KindUnknown
		} else {
			src.Kind = model.ParseSourceKind(raw)
		}
	}
	resolveOrigins(reg)

	return reg
}

// CredibilitySourceIDs returns the registry id of every source mention in the
// claim's credibility block, synthesizing ids the same way Normalize does
func CredibilitySourceIDs(claim model.Claim) []string {
	mentions := claim.CredibilitySources()
	ids := make([]string, len(mentions))
	for i, m := range mentions {
		ids[i] = m.ID
		if ids[i] == "" {
			ids[i] = syntheticID("src-", "claim", claim.ID, fmt.Sprint(i), m.URL, m.Title)
		}
	}
	return ids
}

// add merges a mention into the registry: first non-empty scalar wins,
// lists union in first-seen order, flags OR together
func (r *SourceRegistry) add(id string, m model.SourceMention, rawKinds map[string]string) {
	src, ok := r.ByID[id]
	if !ok {
		src = &model.Source{
			ID:      id,
			Authors: []string{},
			Cites:   []string{},
		}
		r.ByID[id] = src
		r.Order = append(r.Order, id)
	}
	src.Mentions++

	if rawKinds[id] == "" {
		rawKinds[id] = m.Kind
	}
	firstNonEmpty(&src.Title, m.Title)
	firstNonEmpty(&src.Org, m.Org)
	firstNonEmpty(&src.Publisher, m.Publisher)
	firstNonEmpty(&src.Date, m.Date)
	firstNonEmpty(&src.URL, m.URL)
	if src.Year == 0 {
		src.Year = m.Year
	}
	if src.Domain == "" {
		switch {
		case m.Domain != "":
			src.Domain = util.DomainOf(m.Domain)
		case m.URL != "":
			src.Domain = util.DomainOf(m.URL)
		}
	}

	src.Authors = union(src.Authors, m.Authors)
	src.Cites = union(src.Cites, m.Cites)

	src.LitigationPrepared = src.LitigationPrepared || m.LitigationPrepared
	src.IsSingleSource = src.IsSingleSource || m.SingleSource
	src.StatedConflict = src.StatedConflict || m.StatedConflict
	src.CountervailingDetail = src.CountervailingDetail || m.CountervailingDetail
}

func firstNonEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = strings.TrimSpace(value)
	}
}

func union(dst, values []string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
