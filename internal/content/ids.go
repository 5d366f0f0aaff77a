package content

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// idAllocator hands out identifiers that are unique within one normalization
// pass.
type idAllocator struct {
	prefix string
	seen   map[string]int
}

func newIDAllocator(prefix string) *idAllocator {
	return &idAllocator{prefix: prefix, seen: make(map[string]int)}
}

// assign keeps a supplied id, otherwise derives one from the title slug and
// the row position, falling back to a random suffix when there is no title.
func (a *idAllocator) assign(raw, title string, idx int) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		if s := Slug(title); s != "" {
			id = a.prefix + "-" + s + "-" + strconv.Itoa(idx)
		} else {
			id = a.prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		}
	}
	n := a.seen[id]
	a.seen[id] = n + 1
	if n == 0 {
		return id
	}
	for {
		n++
		candidate := id + "-" + strconv.Itoa(n)
		if a.seen[candidate] == 0 {
			a.seen[candidate] = 1
			return candidate
		}
	}
}
