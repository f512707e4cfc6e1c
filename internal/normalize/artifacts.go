package normalize

import (
	"fmt"
	"strings"

	"github.com/ppiankov/evidentia/internal/model"
)

// ArtifactRegistry is the flat, typed artifact list of one document
type ArtifactRegistry struct {
	ByID       map[string]*model.Artifact
	Order      []string
	Duplicates []string // ids repeated inside the global index or within one page
}

// Get returns the artifact with the given id
func (r *ArtifactRegistry) Get(id string) (*model.Artifact, bool) {
	a, ok := r.ByID[id]
	return a, ok
}

// All returns every artifact in first-seen order
func (r *ArtifactRegistry) All() []*model.Artifact {
	out := make([]*model.Artifact, 0, len(r.Order))
	for _, id := range r.Order {
		out = append(out, r.ByID[id])
	}
	return out
}

// NormalizeArtifacts flattens the global artifact index and every page's
// artifact mentions into one registry. Page mentions inherit the page number
// as their anchor.
func NormalizeArtifacts(doc *model.Document) *ArtifactRegistry {
	reg := &ArtifactRegistry{ByID: make(map[string]*model.Artifact)}
	flagged := make(map[string]bool)

	markDuplicate := func(id string) {
		if !flagged[id] {
			reg.Duplicates = append(reg.Duplicates, id)
			flagged[id] = true
		}
	}

	seenGlobal := make(map[string]bool)
	for i, m := range doc.GlobalArtifacts() {
		id := m.ID
		if id == "" {
			id = syntheticID("art-", "global", fmt.Sprint(i), m.Type, m.Value)
		}
		if seenGlobal[id] {
			markDuplicate(id)
		}
		seenGlobal[id] = true
		reg.add(id, m, nil)
	}

	for p, page := range doc.Pages() {
		seenOnPage := make(map[string]bool)
		for i, m := range page.ArtifactsFound {
			id := m.ID
			if id == "" {
				id = syntheticID("art-", "page", fmt.Sprint(p), fmt.Sprint(i), m.Type, m.Value)
			}
			if seenOnPage[id] {
				markDuplicate(id)
			}
			seenOnPage[id] = true

			loc := m.Location
			if loc == nil {
				loc = &model.Location{Page: page.PageNumber}
			} else if loc.Page == 0 {
				withPage := *loc
				withPage.Page = page.PageNumber
				loc = &withPage
			}
			reg.add(id, m, loc)
		}
	}

	return reg
}

func (r *ArtifactRegistry) add(id string, m model.ArtifactMention, loc *model.Location) {
	a, ok := r.ByID[id]
	if !ok {
		a = &model.Artifact{ID: id}
		r.ByID[id] = a
		r.Order = append(r.Order, id)
	}

	if loc == nil && m.Location != nil {
		copied := *m.Location
		loc = &copied
	}

	firstNonEmpty(&a.Type, strings.ToLower(m.Type))
	firstNonEmpty(&a.Value, m.Value)
	firstNonEmpty(&a.ExtractedFrom, m.ExtractedFrom)
	if a.Confidence == 0 {
		a.Confidence = m.Confidence
	}
	if !a.HasAnchor() && loc != nil && loc.Page > 0 {
		a.Location = loc
	}
}
