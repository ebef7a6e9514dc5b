package roster

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"visitor-pass-console/internal/model"
)

const englishRoster = "FULL NAME\tPOSITION\tDEPARTMENT\tBUILDING\tE-MAIL\tSTATUS\n" +
	"Anna Petrova\tEngineer\tR&D\tHQ\tanna@example.com\tActive\n" +
	"\t\t\t\t\t\n" +
	"Boris Sidorov\tDriver\tLogistics\tAnnex\t\tOn leave\n" +
	"Nobody\t\tSales\tHQ\t\tActive\n"

func TestReadTabDelimited(t *testing.T) {
	res, err := Read(strings.NewReader(englishRoster))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if res.Language != "en" {
		t.Errorf("expected english definition, got %q", res.Language)
	}
	if len(res.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d: %+v", len(res.Employees), res.Employees)
	}

	anna := res.Employees[0]
	if anna.FullName != "Anna Petrova" || anna.Building != "HQ" || anna.Status != model.StatusActive {
		t.Errorf("unexpected first employee %+v", anna)
	}
	if res.Employees[1].Status != model.StatusInactive {
		t.Errorf("expected non-active status to import as inactive, got %q", res.Employees[1].Status)
	}

	if len(res.Skipped) != 1 || res.Skipped[0].Line != 5 {
		t.Fatalf("expected line 5 to be skipped, got %+v", res.Skipped)
	}
	var verr *model.ValidationError
	if !errors.As(res.Skipped[0], &verr) || verr.Fields["position"] == "" {
		t.Errorf("expected a position validation error, got %v", res.Skipped[0])
	}
}

func TestReadUTF16WithBOM(t *testing.T) {
	content := "ФИО\tДОЛЖНОСТЬ\tОТДЕЛ\tСТАТУС\nИванов Иван\tИнженер\tИТ\tАктивен\n"
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := encoder.Bytes([]byte(content))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if res.Language != "ru" || len(res.Employees) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if e := res.Employees[0]; e.FullName != "Иванов Иван" || e.Status != model.StatusActive {
		t.Errorf("unexpected employee %+v", e)
	}
}

func TestReadCommaDelimited(t *testing.T) {
	content := "\xEF\xBB\xBFfull name,position,department\n\"Petrova, Anna\",Engineer,R&D\n"
	res, err := Read(bytes.NewBufferString(content))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(res.Employees) != 1 || res.Employees[0].FullName != "Petrova, Anna" {
		t.Errorf("unexpected employees %+v", res.Employees)
	}
}

func TestReadMissingColumns(t *testing.T) {
	if _, err := Read(strings.NewReader("NAME\tTITLE\nAnna\tEngineer\n")); !errors.Is(err, ErrMissingColumns) {
		t.Errorf("expected ErrMissingColumns, got %v", err)
	}
}
