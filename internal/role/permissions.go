package role

// PermissionSet describes what a role is allowed to do. The capability
// strings are primarily disclosure for clients (UI gating, docs); management
// authority is enforced through CanManage.
type PermissionSet struct {
	Role         Role     `json:"role"`
	Capabilities []string `json:"capabilities"`
	Description  string   `json:"description"`
}

var permissions = map[Role]PermissionSet{
	DepartmentHead: {
		Role: DepartmentHead,
		Capabilities: []string{
			"View all department data",
			"Manage all department users",
			"Create and delete projects",
			"Set department budgets",
			"Approve major decisions",
			"Access executive reports",
		},
		Description: "Has full access to all department resources and can manage all personnel",
	},
	Manager: {
		Role: Manager,
		Capabilities: []string{
			"Manage assigned teams",
			"Create and assign tasks",
			"View team performance",
			"Approve time off requests",
			"Conduct performance reviews",
			"Manage project budgets",
		},
		Description: "Manages teams and has oversight of multiple projects and team leads",
	},
	AssistantManager: {
		Role: AssistantManager,
		Capabilities: []string{
			"Assist manager duties",
			"Supervise team leads",
			"Create team schedules",
			"Monitor task progress",
			"Handle day-to-day operations",
			"Coordinate between teams",
		},
		Description: "Supports manager and supervises team leads and project execution",
	},
	TeamLead: {
		Role: TeamLead,
		Capabilities: []string{
			"Lead specific team",
			"Assign daily tasks",
			"Mentor team members",
			"Track team progress",
			"Conduct team meetings",
			"Report to management",
		},
		Description: "Directly leads a team of employees and ensures task completion",
	},
	Employee: {
		Role: Employee,
		Capabilities: []string{
			"Complete assigned tasks",
			"Update task progress",
			"Collaborate with teammates",
			"Submit time reports",
			"Participate in meetings",
			"Access personal dashboard",
		},
		Description: "Individual contributor responsible for executing assigned tasks",
	},
}

// PermissionsFor returns the capability set for a role. Every role in the
// enumeration has an entry; the zero PermissionSet is only returned for
// values outside the enumeration.
func PermissionsFor(r Role) PermissionSet {
	return permissions[r]
}
