package console

import (
	"strconv"
	"strings"

	"visitor-pass-console/internal/model"
)

// Table is a record list laid out for display.
type Table struct {
	Columns []string
	Rows    [][]string
}

func VisitorTable(visitors []model.Visitor) Table {
	t := Table{Columns: []string{"ID", "NAME", "CARD", "DESTINATION", "DATE", "TIME", "STATUS"}}
	for _, v := range visitors {
		t.Rows = append(t.Rows, []string{v.ID, v.FullName, v.CardNumber, v.Destination, v.VisitDate, v.VisitTime, string(v.Status)})
	}
	return t
}

func EmployeeTable(employees []model.Employee) Table {
	t := Table{Columns: []string{"ID", "NAME", "POSITION", "DEPARTMENT", "BUILDING", "CARD", "STATUS"}}
	for _, e := range employees {
		t.Rows = append(t.Rows, []string{e.ID, e.FullName, e.Position, e.Department, e.Building, e.CardNumber, string(e.Status)})
	}
	return t
}

func BuildingTable(buildings []model.Building) Table {
	t := Table{Columns: []string{"ID", "NAME", "ADDRESS", "FLOORS", "DEPARTMENTS"}}
	for _, b := range buildings {
		t.Rows = append(t.Rows, []string{b.ID, b.Name, b.Address, strconv.Itoa(b.FloorCount), b.Departments.String()})
	}
	return t
}

// OperatorTable never shows passwords.
func OperatorTable(operators []model.Operator) Table {
	t := Table{Columns: []string{"ID", "NAME", "USERNAME", "ROLE", "SHIFT", "PERMISSIONS", "STATUS"}}
	for _, o := range operators {
		t.Rows = append(t.Rows, []string{o.ID, o.FullName, o.Username, string(o.Role), string(o.Shift), strings.Join(o.Permissions, ","), string(o.Status)})
	}
	return t
}
