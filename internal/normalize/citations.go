package normalize

import "github.com/ppiankov/evidentia/internal/model"

// PageCitation is a page-level citation with the page it was found on
type PageCitation struct {
	Page int
	model.Citation
}

// CitationIndex holds every page-level citation in document order
type CitationIndex struct {
	All      []PageCitation
	bySource map[string][]string
}

// IndexCitations collects stage1.pages[].citations_found[]
func IndexCitations(doc *model.Document) *CitationIndex {
	idx := &CitationIndex{bySource: make(map[string][]string)}
	for _, page := range doc.Pages() {
		for _, c := range page.Citations() {
			idx.All = append(idx.All, PageCitation{Page: page.PageNumber, Citation: c})
			if c.SourceID != "" {
				idx.bySource[c.SourceID] = append(idx.bySource[c.SourceID], c.CitationID)
			}
		}
	}
	return idx
}

// CitationIDsFor returns the citation ids resolved to any of the given sources
func (idx *CitationIndex) CitationIDsFor(sourceIDs []string) []string {
	var out []string
	for _, id := range sourceIDs {
		out = append(out, idx.bySource[id]...)
	}
	return out
}
