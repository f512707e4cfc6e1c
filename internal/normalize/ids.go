package normalize

import (
	"strings"

	"github.com/google/uuid"
)

// idNamespace seeds name-based UUIDs so synthetic ids are identical across runs
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ppiankov/evidentia"))

// syntheticID derives a stable id from the mention's identifying parts
func syntheticID(prefix string, parts ...string) string {
	u := uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "|")))
	return prefix + strings.ReplaceAll(u.String(), "-", "")[:12]
}
