package model

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

// Operator permissions. PermissionAll grants every permission.
const (
	PermissionAll             = "all"
	PermissionViewVisitors    = "view_visitors"
	PermissionManageVisitors  = "manage_visitors"
	PermissionViewEmployees   = "view_employees"
	PermissionManageEmployees = "manage_employees"
	PermissionViewBuildings   = "view_buildings"
	PermissionManageBuildings = "manage_buildings"
	PermissionViewReports     = "view_reports"
	PermissionSystemSettings  = "system_settings"
)

type Operator struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullName" validate:"required"`
	Username    string   `json:"username" validate:"required"`
	Password    string   `json:"password,omitempty" validate:"required"`
	Role        Role     `json:"role" validate:"required,oneof=admin operator"`
	Permissions []string `json:"permissions" validate:"dive,oneof=all view_visitors manage_visitors view_employees manage_employees view_buildings manage_buildings view_reports system_settings"`
	Shift       Shift    `json:"shift" validate:"required,oneof=morning evening night"`
	Status      Status   `json:"status" validate:"required,oneof=active inactive"`
	CreatedAt   string   `json:"createdAt"`
}

func (o Operator) GetID() string        { return o.ID }
func (o Operator) GetCreatedAt() string { return o.CreatedAt }

// Redacted returns a copy without the password, for display and tokens.
func (o Operator) Redacted() Operator {
	o.Password = ""
	o.Permissions = append([]string(nil), o.Permissions...)
	return o
}

// HasPermission reports whether the operator holds perm, directly or through PermissionAll.
func (o Operator) HasPermission(perm string) bool {
	for _, p := range o.Permissions {
		if p == perm || p == PermissionAll {
			return true
		}
	}
	return false
}

type OperatorInput struct {
	FullName    string   `json:"fullName"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	Shift       Shift    `json:"shift"`
	Status      Status   `json:"status"` // Defaults to active
}

func (in OperatorInput) Operator(id, createdAt string) Operator {
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	permissions := in.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return Operator{
		ID:          id,
		FullName:    in.FullName,
		Username:    in.Username,
		Password:    in.Password,
		Role:        in.Role,
		Permissions: permissions,
		Shift:       in.Shift,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func (in OperatorInput) Validate() error {
	return Validate(in.Operator("", ""))
}

type OperatorPatch struct {
	FullName    *string   `json:"fullName,omitempty"`
	Username    *string   `json:"username,omitempty"`
	Password    *string   `json:"password,omitempty"`
	Role        *Role     `json:"role,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
	Shift       *Shift    `json:"shift,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

func (p OperatorPatch) Apply(o *Operator) {
	set(&o.FullName, p.FullName)
	set(&o.Username, p.Username)
	set(&o.Password, p.Password)
	set(&o.Role, p.Role)
	set(&o.Permissions, p.Permissions)
	set(&o.Shift, p.Shift)
	set(&o.Status, p.Status)
}

func (p OperatorPatch) ValidateAgainst(o Operator) error {
	p.Apply(&o)
	return Validate(o)
}
