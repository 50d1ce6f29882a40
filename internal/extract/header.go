package extract

import "github.com/pfrederiksen/fencing-results/internal/variant"

// ColumnIndex maps column roles to header positions for one extraction run.
// Roles the dictionary does not resolve report -1. A ColumnIndex is never
// modified after ResolveHeader returns it.
type ColumnIndex struct {
	positions map[variant.ColumnRole]int
	roles     []variant.ColumnRole
}

// ResolveHeader scans header cells left to right for every role in dict and
// records the first cell whose trimmed text is one of the role's labels.
func ResolveHeader(cells []string, dict variant.Dictionary) ColumnIndex {
	idx := ColumnIndex{
		positions: make(map[variant.ColumnRole]int, len(dict)),
		roles:     dict.Roles(),
	}
	for _, role := range idx.roles {
		idx.positions[role] = -1
		for i, cell := range cells {
			if dict.Matches(role, cell) {
				idx.positions[role] = i
				break
			}
		}
	}
	return idx
}

// Of returns the position of role, or -1 when it is absent.
func (c ColumnIndex) Of(role variant.ColumnRole) int {
	if pos, ok := c.positions[role]; ok {
		return pos
	}
	return -1
}

// Unresolved lists declared roles that matched no header cell.
func (c ColumnIndex) Unresolved() []variant.ColumnRole {
	var out []variant.ColumnRole
	for _, role := range c.roles {
		if c.positions[role] < 0 {
			out = append(out, role)
		}
	}
	return out
}
