package model

import (
	"encoding/json"
	"strings"
)

type Building struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Address     string      `json:"address" validate:"required"`
	Description string      `json:"description"`
	FloorCount  int         `json:"floorCount" validate:"min=1"`
	Departments Departments `json:"departments"`
	CreatedAt   string      `json:"createdAt"`
}

func (b Building) GetID() string        { return b.ID }
func (b Building) GetCreatedAt() string { return b.CreatedAt }

// Departments is an ordered list of department names. Duplicates are kept.
type Departments []string

// ParseDepartments splits a comma separated list, trimming names and
// dropping empty entries.
func ParseDepartments(s string) Departments {
	departments := Departments{}
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			departments = append(departments, name)
		}
	}
	return departments
}

func (d Departments) String() string {
	return strings.Join(d, ", ")
}

// UnmarshalJSON accepts either an array of names or a comma separated string.
func (d *Departments) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = ParseDepartments(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*d = Departments(list)
	return nil
}

type BuildingInput struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Description string      `json:"description"`
	FloorCount  int         `json:"floorCount"`
	Departments Departments `json:"departments"`
}

func (in BuildingInput) Building(id, createdAt string) Building {
	departments := in.Departments
	if departments == nil {
		departments = Departments{}
	}
	return Building{
		ID:          id,
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		FloorCount:  in.FloorCount,
		Departments: departments,
		CreatedAt:   createdAt,
	}
}

func (in BuildingInput) Validate() error {
	return Validate(in.Building("", ""))
}

type BuildingPatch struct {
	Name        *string      `json:"name,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Description *string      `json:"description,omitempty"`
	FloorCount  *int         `json:"floorCount,omitempty"`
	Departments *Departments `json:"departments,omitempty"`
}

func (p BuildingPatch) Apply(b *Building) {
	set(&b.Name, p.Name)
	set(&b.Address, p.Address)
	set(&b.Description, p.Description)
	set(&b.FloorCount, p.FloorCount)
	set(&b.Departments, p.Departments)
}

func (p BuildingPatch) ValidateAgainst(b Building) error {
	p.Apply(&b)
	return Validate(b)
}
