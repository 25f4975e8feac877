package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"strconv"
	"strings"
)

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"money":       formatMoney,
	"number":      formatNumber,
	"percent":     formatPercent,
	"statusClass": statusClass,
	"lower":       strings.ToLower,
	"upper":       strings.ToUpper,
	"add":         func(a, b int) int { return a + b },
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// mustParseTemplate is for handler constructors; templates are embedded so a
// failure is a build defect.
func mustParseTemplate(name string) *template.Template {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		panic("Failed to parse " + name + " template: " + err.Error())
	}
	return tmpl
}

// formatMoney renders rupee amounts with thousands separators.
func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s₹%s.%02d", sign, group(cents/100), cents%100)
}

func formatNumber(v int64) string {
	if v < 0 {
		return "-" + group(-v)
	}
	return group(v)
}

func group(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatPercent(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// statusClass maps API status strings onto badge styles.
func statusClass(status string) string {
	switch strings.ToUpper(status) {
	case "ACTIVE", "APPROVED", "SUCCESS", "COMPLETED", "CREDIT", "LOW":
		return "badge-ok"
	case "PENDING", "PROCESSING", "MEDIUM":
		return "badge-warn"
	case "FROZEN", "REJECTED", "FAILED", "BLOCKED", "DEBIT", "HIGH":
		return "badge-bad"
	default:
		return "badge-muted"
	}
}
