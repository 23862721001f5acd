package seed

import (
	"fmt"

	"github.com/baisalikhan/next-stock/internal/core"
)

// loadOrder derives the seeding order from the declared foreign-key graph:
// a kind appears only after everything it references. Within a rank, kinds
// keep their declaration order so the result is deterministic. A reference
// cycle is a programming error and fails loudly.
func loadOrder() ([]core.EntityKind, error) {
	kinds := core.Kinds()

	pending := make(map[core.EntityKind]int, len(kinds))
	for _, k := range kinds {
		pending[k] = len(k.DependsOn())
	}

	order := make([]core.EntityKind, 0, len(kinds))
	placed := make(map[core.EntityKind]bool, len(kinds))

	for len(order) < len(kinds) {
		progressed := false
		for _, k := range kinds {
			if placed[k] || pending[k] != 0 {
				continue
			}
			order = append(order, k)
			placed[k] = true
			progressed = true
			for _, other := range kinds {
				for _, dep := range other.DependsOn() {
					if dep == k {
						pending[other]--
					}
				}
			}
		}
		if !progressed {
			return nil, fmt.Errorf("entity dependency cycle involving %d kinds", len(kinds)-len(order))
		}
	}

	return order, nil
}
