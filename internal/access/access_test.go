package access

import (
	"os"
	"path/filepath"
	"testing"

	"visitor-pass-console/internal/model"
)

func TestGuard(t *testing.T) {
	admin := &model.Operator{Role: model.RoleAdmin}
	operator := &model.Operator{Role: model.RoleOperator}

	tests := []struct {
		name     string
		op       *model.Operator
		required model.Role
		want     Decision
	}{
		{"operator on admin page", operator, model.RoleAdmin, Deny},
		{"admin on operator page", admin, model.RoleOperator, Allow},
		{"admin on admin page", admin, model.RoleAdmin, Allow},
		{"operator on operator page", operator, model.RoleOperator, Allow},
		{"operator on open page", operator, RoleNone, Allow},
		{"no session on open page", nil, RoleNone, Allow},
		{"no session on operator page", nil, model.RoleOperator, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guard(tt.op, tt.required); got != tt.want {
				t.Errorf("Guard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	operator := &model.Operator{Role: model.RoleOperator}

	for page, want := range map[string]Decision{
		PageDashboard: Allow,
		PageVisitors:  Allow,
		PageEmployees: Allow,
		PageBuildings: Deny,
		PageOperators: Deny,
		"reports":     Deny,
	} {
		if got := p.Check(operator, page); got != want {
			t.Errorf("operator on %s: got %v, want %v", page, got, want)
		}
	}

	if visible := p.Visible(operator); len(visible) != 3 || visible[0].Name != PageDashboard {
		t.Errorf("unexpected visible pages: %+v", visible)
	}
	if pages := p.Pages(); len(pages) != 5 || pages[4].Name != PageOperators {
		t.Errorf("unexpected page order: %+v", pages)
	}
}

func TestLoadPolicyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "pages:\n  employees:\n    required_role: admin\n  reports:\n    title: Reports\n    path: /reports\n    required_role: operator\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy failed: %v", err)
	}

	operator := &model.Operator{Role: model.RoleOperator}
	if p.Check(operator, PageEmployees) != Deny {
		t.Error("expected employees page to require admin")
	}
	if p.Check(operator, "reports") != Allow {
		t.Error("expected reports page to admit operators")
	}
	if page, _ := p.Page(PageEmployees); page.Path != "/employees" || page.Title != "Employees" {
		t.Errorf("override lost built-in path or title: %+v", page)
	}
	if p.Check(operator, PageVisitors) != Allow {
		t.Error("unmentioned pages keep their built-in requirement")
	}
}

func TestLoadPolicyRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	os.WriteFile(path, []byte("pages:\n  visitors:\n    required_role: superuser\n"), 0o600)

	if _, err := LoadPolicy(path); err == nil {
		t.Error("expected an error for an unknown role")
	}
}
