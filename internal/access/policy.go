package access

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"visitor-pass-console/internal/model"
)

// Page names.
const (
	PageDashboard = "dashboard"
	PageVisitors  = "visitors"
	PageEmployees = "employees"
	PageBuildings = "buildings"
	PageOperators = "operators"
)

//go:embed policy.yaml
var defaultPolicy []byte

var pageOrder = []string{PageDashboard, PageVisitors, PageEmployees, PageBuildings, PageOperators}

type Page struct {
	Name         string     `yaml:"-"`
	Title        string     `yaml:"title"`
	Path         string     `yaml:"path"`
	RequiredRole model.Role `yaml:"required_role"`
}

type policyFile struct {
	Pages map[string]Page `yaml:"pages"`
}

// Policy maps page names to their role requirement.
type Policy struct {
	pages map[string]Page
}

// DefaultPolicy returns the built-in page table.
func DefaultPolicy() *Policy {
	p := &Policy{pages: map[string]Page{}}
	if err := p.merge(defaultPolicy); err != nil {
		panic(fmt.Sprintf("built-in page policy is invalid: %v", err))
	}
	return p
}

// LoadPolicy reads a YAML policy file over the built-in table. Pages the
// file does not mention keep their built-in requirement.
func LoadPolicy(path string) (*Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	if err := p.merge(data); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	slog.Info("Page policy loaded", "file", path, "pages", len(p.pages))
	return p, nil
}

func (p *Policy) merge(data []byte) error {
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	for name, page := range file.Pages {
		switch page.RequiredRole {
		case RoleNone, model.RoleAdmin, model.RoleOperator:
		default:
			return fmt.Errorf("page %q: unknown role %q", name, page.RequiredRole)
		}
		page.Name = name
		if existing, ok := p.pages[name]; ok {
			if page.Title == "" {
				page.Title = existing.Title
			}
			if page.Path == "" {
				page.Path = existing.Path
			}
		}
		p.pages[name] = page
	}
	return nil
}

func (p *Policy) Page(name string) (Page, bool) {
	page, ok := p.pages[name]
	return page, ok
}

// Check applies Guard to a named page. Unknown pages are denied.
func (p *Policy) Check(op *model.Operator, name string) Decision {
	page, ok := p.pages[name]
	if !ok {
		slog.Warn("Access check for unknown page", "page", name)
		return Deny
	}
	return Guard(op, page.RequiredRole)
}

// Pages lists the pages in navigation order; extra pages follow by name.
func (p *Policy) Pages() []Page {
	seen := make(map[string]bool, len(p.pages))
	pages := make([]Page, 0, len(p.pages))
	for _, name := range pageOrder {
		if page, ok := p.pages[name]; ok {
			pages = append(pages, page)
			seen[name] = true
		}
	}

	var extra []string
	for name := range p.pages {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		pages = append(pages, p.pages[name])
	}
	return pages
}

// Visible lists the pages op may open.
func (p *Policy) Visible(op *model.Operator) []Page {
	var visible []Page
	for _, page := range p.Pages() {
		if Guard(op, page.RequiredRole) == Allow {
			visible = append(visible, page)
		}
	}
	return visible
}
