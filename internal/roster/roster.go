// Package roster reads employee lists exported from HR systems as delimited text.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"visitor-pass-console/internal/model"
)

var ErrMissingColumns = errors.New("roster is missing required columns")

// Definition names the roster columns in one export language.
type Definition struct {
	FullNameField   string
	PositionField   string
	DepartmentField string
	BuildingField   string
	PhoneField      string
	EmailField      string
	CardNumberField string
	StatusField     string

	ActiveStatus string

	Language string // Language code, e.g. "en", "ru"
}

// Definitions lists the known export headers.
var Definitions = []Definition{
	{
		FullNameField:   "FULL NAME",
		PositionField:   "POSITION",
		DepartmentField: "DEPARTMENT",
		BuildingField:   "BUILDING",
		PhoneField:      "PHONE",
		EmailField:      "E-MAIL",
		CardNumberField: "CARD NUMBER",
		StatusField:     "STATUS",
		ActiveStatus:    "Active",
		Language:        "en",
	},
	{
		FullNameField:   "ФИО",
		PositionField:   "ДОЛЖНОСТЬ",
		DepartmentField: "ОТДЕЛ",
		BuildingField:   "ЗДАНИЕ",
		PhoneField:      "ТЕЛЕФОН",
		EmailField:      "ЭЛЕКТРОННАЯ ПОЧТА",
		CardNumberField: "НОМЕР КАРТЫ",
		StatusField:     "СТАТУС",
		ActiveStatus:    "Активен",
		Language:        "ru",
	},
}

// RowError reports a roster line that could not be imported.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Result holds the employees read from a roster and the rows that were skipped.
type Result struct {
	Language  string
	Employees []model.EmployeeInput
	Skipped   []RowError
}

// ReadFile opens and reads a roster file.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a roster. UTF-16 exports with a byte order mark are decoded,
// anything else is read as UTF-8. Fields are tab separated unless the
// header line has no tabs, in which case commas are used.
func Read(r io.Reader) (*Result, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'
	if header, _, _ := bytes.Cut(data, []byte("\n")); !bytes.ContainsRune(header, '\t') {
		reader.Comma = ','
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	def, columns, ok := matchDefinition(headers)
	if !ok {
		return nil, ErrMissingColumns
	}

	result := &Result{Language: def.Language}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading roster: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		field := func(name string) string {
			if i, ok := columns[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		in := model.EmployeeInput{
			FullName:   field(def.FullNameField),
			Position:   field(def.PositionField),
			Department: field(def.DepartmentField),
			Building:   field(def.BuildingField),
			Phone:      field(def.PhoneField),
			Email:      field(def.EmailField),
			CardNumber: field(def.CardNumberField),
			Status:     model.StatusActive,
		}
		if _, ok := columns[def.StatusField]; ok && !strings.EqualFold(field(def.StatusField), def.ActiveStatus) {
			in.Status = model.StatusInactive
		}

		if err := in.Validate(); err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}
		result.Employees = append(result.Employees, in)
	}

	slog.Debug("Roster read", "language", def.Language, "employees", len(result.Employees), "skipped", len(result.Skipped))
	return result, nil
}

// matchDefinition picks the first definition whose required columns are all present.
func matchDefinition(headers []string) (Definition, map[string]int, bool) {
	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		columns[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	for _, def := range Definitions {
		required := []string{def.FullNameField, def.PositionField, def.DepartmentField}
		found := true
		for _, name := range required {
			if _, ok := columns[name]; !ok {
				found = false
				break
			}
		}
		if found {
			return def, columns, true
		}
	}
	return Definition{}, nil, false
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
