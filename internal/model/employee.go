package model

type Employee struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName" validate:"required"`
	CardNumber string `json:"cardNumber"`
	Position   string `json:"position" validate:"required"`
	Department string `json:"department" validate:"required"`
	Building   string `json:"building"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Status     Status `json:"status" validate:"required,oneof=active inactive"`
	CreatedAt  string `json:"createdAt"`
}

func (e Employee) GetID() string        { return e.ID }
func (e Employee) GetCreatedAt() string { return e.CreatedAt }

type EmployeeInput struct {
	FullName   string `json:"fullName"`
	CardNumber string `json:"cardNumber"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Building   string `json:"building"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Status     Status `json:"status"` // Defaults to active
}

func (in EmployeeInput) Employee(id, createdAt string) Employee {
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	return Employee{
		ID:         id,
		FullName:   in.FullName,
		CardNumber: in.CardNumber,
		Position:   in.Position,
		Department: in.Department,
		Building:   in.Building,
		Phone:      in.Phone,
		Email:      in.Email,
		Status:     status,
		CreatedAt:  createdAt,
	}
}

func (in EmployeeInput) Validate() error {
	return Validate(in.Employee("", ""))
}

type EmployeePatch struct {
	FullName   *string `json:"fullName,omitempty"`
	CardNumber *string `json:"cardNumber,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	Building   *string `json:"building,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Status     *Status `json:"status,omitempty"`
}

func (p EmployeePatch) Apply(e *Employee) {
	set(&e.FullName, p.FullName)
	set(&e.CardNumber, p.CardNumber)
	set(&e.Position, p.Position)
	set(&e.Department, p.Department)
	set(&e.Building, p.Building)
	set(&e.Phone, p.Phone)
	set(&e.Email, p.Email)
	set(&e.Status, p.Status)
}

func (p EmployeePatch) ValidateAgainst(e Employee) error {
	p.Apply(&e)
	return Validate(e)
}
