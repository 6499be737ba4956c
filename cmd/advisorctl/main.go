package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"advisor-backend/internal/advice"
	"advisor-backend/internal/reports"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	titleColor   = color.New(color.FgMagenta, color.Bold)
)

// projectFile is the YAML shape accepted by the render command.
type projectFile struct {
	ProjectName        string `yaml:"project_name"`
	ProjectDescription string `yaml:"project_description"`
	ContractType       string `yaml:"contract_type"`
	OrganizationRole   string `yaml:"organization_role"`
	SenderName         string `yaml:"sender_name"`
	Issues             []struct {
		Description  string `yaml:"description"`
		ActionsTaken string `yaml:"actions_taken"`
	} `yaml:"issues"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "advisorctl",
		Short: "Offline contract advisory tooling",
		Long: `advisorctl renders contract advisory reports and draft letters
from a YAML project description, without a running server or an
external generation provider.`,
		SilenceUsage: true,
	}

	var (
		inputFile  string
		outputFile string
		withLetter bool
		asHTML     bool
	)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render an advisory report from a project YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(inputFile, outputFile, withLetter, asHTML)
		},
	}
	renderCmd.Flags().StringVarP(&inputFile, "file", "f", "project.yaml", "Project description YAML file")
	renderCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write the rendered report to a file instead of stdout")
	renderCmd.Flags().BoolVar(&withLetter, "letter", false, "Append a draft letter to the output")
	renderCmd.Flags().BoolVar(&asHTML, "html", false, "Render the report as HTML")
	rootCmd.AddCommand(renderCmd)

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRender(inputFile, outputFile string, withLetter, asHTML bool) error {
	project, senderName, err := loadProject(inputFile)
	if err != nil {
		return err
	}

	titleColor.Printf("Rendering advisory report: %s\n", project.ProjectName)
	infoColor.Printf("Contract: %s, role: %s, issues: %d\n",
		project.ContractType, project.OrganizationRole, len(project.Issues))

	analyses := make([]advice.IssueAnalysis, 0, len(project.Issues))
	for _, issue := range project.Issues {
		analyses = append(analyses, advice.RenderAnalysis(
			issue.Description,
			issue.ActionsTaken,
			project.ContractType,
			project.OrganizationRole,
		))
	}

	report := reports.Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Project:   project,
		Analyses:  analyses,
	}

	var out string
	if asHTML {
		html, err := reports.RenderHTML(report)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		out = string(html)
	} else {
		out = reports.RenderText(report)
	}

	if withLetter && !asHTML {
		letter := advice.AssembleLetter(report, advice.LetterOptions{SenderName: senderName})
		out += "\n\n" + formatLetter(letter)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		successColor.Printf("Report written to %s\n", outputFile)
		return nil
	}

	fmt.Println(out)
	return nil
}

func loadProject(path string) (advice.ProjectDetails, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return advice.ProjectDetails{}, "", fmt.Errorf("read project file: %w", err)
	}

	var file projectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return advice.ProjectDetails{}, "", fmt.Errorf("parse project file: %w", err)
	}

	if strings.TrimSpace(file.ProjectName) == "" {
		return advice.ProjectDetails{}, "", fmt.Errorf("project_name is required")
	}
	if len(file.Issues) == 0 {
		return advice.ProjectDetails{}, "", fmt.Errorf("at least one issue is required")
	}
	for i, issue := range file.Issues {
		if strings.TrimSpace(issue.Description) == "" {
			return advice.ProjectDetails{}, "", fmt.Errorf("issue %d is missing a description", i+1)
		}
	}

	project := advice.ProjectDetails{
		ProjectName:        file.ProjectName,
		ProjectDescription: file.ProjectDescription,
		ContractType:       advice.ParseContractForm(file.ContractType),
		OrganizationRole:   advice.ParseOrgRole(file.OrganizationRole),
	}
	for _, issue := range file.Issues {
		project.Issues = append(project.Issues, advice.Issue{
			Description:  issue.Description,
			ActionsTaken: issue.ActionsTaken,
		})
	}
	return project, file.SenderName, nil
}

func formatLetter(letter advice.DraftLetter) string {
	var b strings.Builder
	b.WriteString("DRAFT LETTER\n")
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n\n")
	b.WriteString("To: " + letter.To + "\n")
	b.WriteString("Subject: " + letter.Subject + "\n\n")
	b.WriteString(letter.Greeting + "\n\n")
	b.WriteString(letter.Body + "\n\n")
	b.WriteString(letter.Closing + "\n")
	b.WriteString(letter.Sender + "\n")
	return b.String()
}
