package variant

// ColumnRole is the semantic meaning of a results table column
type ColumnRole int

const (
	Rank ColumnRole = iota
	FullName
	Surname
	Forename
	Club
	Country
	YearOfBirth
)

var roleNames = map[ColumnRole]string{
	Rank:        "rank",
	FullName:    "name",
	Surname:     "surname",
	Forename:    "forename",
	Club:        "club",
	Country:     "country",
	YearOfBirth: "yob",
}

func (r ColumnRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// RoleLabels pairs a role with the header labels that identify it.
type RoleLabels struct {
	Role   ColumnRole
	Labels []string
}

// Dictionary maps column roles to known header labels. Order matters only for
// reporting; each role is resolved independently. Labels are matched
// case-sensitively against trimmed header cells.
type Dictionary []RoleLabels

// Roles returns the roles the dictionary declares, in declaration order.
func (d Dictionary) Roles() []ColumnRole {
	roles := make([]ColumnRole, 0, len(d))
	for _, rl := range d {
		roles = append(roles, rl.Role)
	}
	return roles
}

// Has reports whether the dictionary declares role.
func (d Dictionary) Has(role ColumnRole) bool {
	for _, rl := range d {
		if rl.Role == role {
			return true
		}
	}
	return false
}

// Matches reports whether label is one of the known labels for role.
func (d Dictionary) Matches(role ColumnRole, label string) bool {
	for _, rl := range d {
		if rl.Role != role {
			continue
		}
		for _, l := range rl.Labels {
			if l == label {
				return true
			}
		}
	}
	return false
}
