package synonym

import (
	"strconv"
	"strings"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

const synonymSeparator = "|"

func groupToHash(g domsyn.Group) map[string]string {
	return map[string]string{
		"canonical": g.Canonical(),
		"synonyms":  strings.Join(g.Synonyms(), synonymSeparator),
		"category":  g.Category(),
		"system":    strconv.FormatBool(g.IsSystem()),
		"active":    strconv.FormatBool(g.IsActive()),
	}
}

// groupFromHash hydrates a group. A missing active flag counts as active.
func groupFromHash(m map[string]string) domsyn.Group {
	var syns []string
	if raw := m["synonyms"]; raw != "" {
		syns = strings.Split(raw, synonymSeparator)
	}
	system, _ := strconv.ParseBool(m["system"])
	active := true
	if raw, ok := m["active"]; ok && raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			active = v
		}
	}
	return domsyn.Reconstruct(m["canonical"], syns, m["category"], system, active)
}
