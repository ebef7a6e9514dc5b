package routes

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/utils"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// pages rendered inside the shared layout
var pages = []string{"dashboard", "records", "login", "error"}

// Renderer builds one template set per page, each wrapped in the layout.
func Renderer() (multitemplate.Renderer, error) {
	layout, err := fs.ReadFile(templateFS, "templates/layout.html.tmpl")
	if err != nil {
		return nil, err
	}

	r := multitemplate.NewRenderer()
	for _, name := range pages {
		page, err := fs.ReadFile(templateFS, "templates/"+name+".html.tmpl")
		if err != nil {
			return nil, err
		}
		r.AddFromStringsFuncs(name, templateFuncs(), `{{template "layout" .}}`, string(layout), string(page))
	}
	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"version": utils.GetVersion,
	}
}

// Merge into existing gin.H
func H(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["BaseURL"] = c.GetString(baseURLKey)
	if _, ok := data["Operator"]; !ok {
		if op, ok := currentOperator(c); ok {
			data["Operator"] = &op
			if policy, ok := c.Get(policyKey); ok {
				data["Pages"] = policy.(*access.Policy).Visible(&op)
			}
		}
	}
	return data
}

// Returns a HTML response with merged data
func HTML(c *gin.Context, code int, name string, data gin.H) {
	data = H(c, data)
	c.HTML(code, name, data)
}
