package role

import "errors"

// ErrUnknownRole is returned by Parse for values outside the enumeration.
var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of organizational roles. The hierarchy is fixed at
// compile time and never changes at runtime.
type Role string

const (
	DepartmentHead   Role = "DEPARTMENT_HEAD"
	Manager          Role = "MANAGER"
	AssistantManager Role = "ASSISTANT_MANAGER"
	TeamLead         Role = "TEAM_LEAD"
	Employee         Role = "EMPLOYEE"
)

// All lists every role in seniority order, most senior first.
var All = []Role{DepartmentHead, Manager, AssistantManager, TeamLead, Employee}

// levels: 1 is the highest authority, 5 the lowest.
var levels = map[Role]int{
	DepartmentHead:   1,
	Manager:          2,
	AssistantManager: 3,
	TeamLead:         4,
	Employee:         5,
}

// manageable is the source of truth for the "can manage" relation. Levels
// happen to be monotonic with it, but authorization checks always consult
// this table, never the level arithmetic.
var manageable = map[Role][]Role{
	DepartmentHead:   {Manager, AssistantManager, TeamLead, Employee},
	Manager:          {AssistantManager, TeamLead, Employee},
	AssistantManager: {TeamLead, Employee},
	TeamLead:         {Employee},
	Employee:         {},
}

// Level returns the numeric authority level of a role (1 = most senior).
// Unknown roles report level 0.
func Level(r Role) int {
	return levels[r]
}

// IsValid reports whether r is one of the closed role enumeration values.
func IsValid(r Role) bool {
	_, ok := levels[r]
	return ok
}

// Parse converts a wire-format role string into a Role.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !IsValid(r) {
		return "", ErrUnknownRole
	}
	return r, nil
}

// CanManage reports whether the actor role may manage the target role.
// No role manages its own level.
func CanManage(actor, target Role) bool {
	for _, r := range manageable[actor] {
		if r == target {
			return true
		}
	}
	return false
}

// IsHigherRole reports whether a outranks b.
func IsHigherRole(a, b Role) bool {
	return Level(a) < Level(b)
}

func (r Role) String() string {
	return string(r)
}
