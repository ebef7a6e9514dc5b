package access

import "visitor-pass-console/internal/model"

// DeniedNotice is shown in place of a page the operator may not open.
const DeniedNotice = "You do not have permission to access this page"

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// RoleNone is the requirement of pages open to every signed-in operator.
const RoleNone model.Role = ""

// Guard decides whether op may open a page requiring role required.
// Admins satisfy every requirement.
func Guard(op *model.Operator, required model.Role) Decision {
	if required == RoleNone {
		return Allow
	}
	if op == nil {
		return Deny
	}
	if op.Role == required || op.Role == model.RoleAdmin {
		return Allow
	}
	return Deny
}
