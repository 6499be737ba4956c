package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// RenderText renders a report as a plain-text document.
func RenderText(report Report) string {
	var b strings.Builder
	p := report.Project

	fmt.Fprintf(&b, "CONTRACT ADVISORY REPORT\n%s\n\n", strings.Repeat("=", 24))
	fmt.Fprintf(&b, "Project:       %s\n", p.ProjectName)
	if strings.TrimSpace(p.ProjectDescription) != "" {
		fmt.Fprintf(&b, "Description:   %s\n", p.ProjectDescription)
	}
	fmt.Fprintf(&b, "Contract form: %s\n", p.ContractType)
	fmt.Fprintf(&b, "Role:          %s\n", p.OrganizationRole)
	fmt.Fprintf(&b, "Date:          %s\n", report.CreatedAt.Format("2 January 2006"))

	for i, a := range report.Analyses {
		fmt.Fprintf(&b, "\n\nISSUE %d: %s\n%s\n", i+1, a.Issue, strings.Repeat("-", 60))
		if a.ActionsTaken != "" {
			fmt.Fprintf(&b, "\nActions taken:\n%s\n", a.ActionsTaken)
		}
		writeTextSection(&b, "Detailed analysis", a.DetailedAnalysis)
		writeTextSection(&b, "Legal context", a.LegalContext)
		writeTextList(&b, "Relevant clauses", a.RelevantClauses)
		writeTextList(&b, "Clause explanations", a.ClauseExplanations)
		writeTextList(&b, "Recommendations", a.Recommendations)
		writeTextSection(&b, "Potential outcomes", a.PotentialOutcomes)
		writeTextSection(&b, "Timeline suggestions", a.TimelineSuggestions)
		writeTextSection(&b, "Risk assessment", a.RiskAssessment)
	}
	return b.String()
}

func writeTextSection(b *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(b, "\n%s:\n%s\n", title, body)
}

func writeTextList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Contract Advisory Report — {{.Project.ProjectName}}</title>
<style>
body { font-family: Georgia, serif; max-width: 50rem; margin: 2rem auto; color: #1a1a1a; }
h1 { border-bottom: 2px solid #333; padding-bottom: .3rem; }
h2 { margin-top: 2rem; }
dl dt { font-weight: bold; }
dl dd { margin: 0 0 .5rem 0; }
.section-title { font-weight: bold; margin-top: 1rem; }
</style>
</head>
<body>
<h1>Contract Advisory Report</h1>
<dl>
<dt>Project</dt><dd>{{.Project.ProjectName}}</dd>
{{if .Project.ProjectDescription}}<dt>Description</dt><dd>{{.Project.ProjectDescription}}</dd>{{end}}
<dt>Contract form</dt><dd>{{.Project.ContractType}}</dd>
<dt>Role</dt><dd>{{.Project.OrganizationRole}}</dd>
<dt>Date</dt><dd>{{.CreatedAt.Format "2 January 2006"}}</dd>
</dl>
{{range $i, $a := .Analyses}}
<h2>Issue {{inc $i}}: {{$a.Issue}}</h2>
{{if $a.ActionsTaken}}<p class="section-title">Actions taken</p><p>{{$a.ActionsTaken}}</p>{{end}}
{{if $a.DetailedAnalysis}}<p class="section-title">Detailed analysis</p><p>{{$a.DetailedAnalysis}}</p>{{end}}
{{if $a.LegalContext}}<p class="section-title">Legal context</p><p>{{$a.LegalContext}}</p>{{end}}
{{if $a.RelevantClauses}}<p class="section-title">Relevant clauses</p><ul>{{range $a.RelevantClauses}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if $a.ClauseExplanations}}<p class="section-title">Clause explanations</p><ul>{{range $a.ClauseExplanations}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if $a.Recommendations}}<p class="section-title">Recommendations</p><ul>{{range $a.Recommendations}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if $a.PotentialOutcomes}}<p class="section-title">Potential outcomes</p><p>{{$a.PotentialOutcomes}}</p>{{end}}
{{if $a.TimelineSuggestions}}<p class="section-title">Timeline suggestions</p><p>{{$a.TimelineSuggestions}}</p>{{end}}
{{if $a.RiskAssessment}}<p class="section-title">Risk assessment</p><p>{{$a.RiskAssessment}}</p>{{end}}
{{end}}
</body>
</html>
`))

// RenderHTML renders a report as a standalone HTML document.
func RenderHTML(report Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
