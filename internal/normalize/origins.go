package normalize

import (
	"sort"

	"github.com/ppiankov/evidentia/internal/util"
)

// resolveOrigins sets every source's origin signature: the sorted set of root
// domains (or ids) of the terminal nodes its citation graph reaches
func resolveOrigins(reg *SourceRegistry) {
	for _, id := range reg.Order {
		reg.ByID[id].OriginSignature = originSignature(reg, id)
	}
}

func originSignature(reg *SourceRegistry, id string) []string {
	seen := make(map[string]bool)
	var signature []string
	for _, terminal := range terminals(reg, id, make(map[string]bool)) {
		key := terminalKey(reg, terminal)
		if !seen[key] {
			seen[key] = true
			signature = append(signature, key)
		}
	}
	sort.Strings(signature)
	return signature
}

// terminals walks cites depth-first. A node without cites, or one absent from
// the registry, is terminal. A node already on the current path is returned
// as-is, which both stops the cycle and makes it its own terminal.
func terminals(reg *SourceRegistry, id string, visiting map[string]bool) []string {
	if visiting[id] {
		return []string{id}
	}
	src, ok := reg.ByID[id]
	if !ok || len(src.Cites) == 0 {
		return []string{id}
	}

	visiting[id] = true
	defer delete(visiting, id)

	var out []string
	for _, cited := range src.Cites {
		out = append(out, terminals(reg, cited, visiting)...)
	}
	return out
}

// terminalKey is the slugged root domain of a terminal, falling back to its id
func terminalKey(reg *SourceRegistry, id string) string {
	if src, ok := reg.ByID[id]; ok && src.Domain != "" {
		if key := util.Slugify(util.RootDomain(src.Domain)); key != "" {
			return key
		}
	}
	if key := util.Slugify(id); key != "" {
		return key
	}
	return id
}

// DistinctOrigins counts distinct origin keys among the given source ids.
// Unknown ids are ignored.
func (r *SourceRegistry) DistinctOrigins(ids []string) int {
	origins := make(map[string]bool)
	for _, id := range ids {
		if src, ok := r.ByID[id]; ok {
			origins[src.OriginKey()] = true
		}
	}
	return len(origins)
}
