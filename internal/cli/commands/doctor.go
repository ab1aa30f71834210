package commands

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/cli/config"
	"github.com/octronic/dreamtool/internal/cli/output"
	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/project"
)

// Check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the project and editor environment",
		Long: `Check that dreamtool can work with the current setup.

The report covers:
- Configuration file in use
- Project file: readable, identifiers unique, items named
- Preferences store and stored theme
- The dream executable and the web UI port

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  dreamtool doctor

  # Output as JSON
  dreamtool doctor -o json`,
		RunE: runDoctor,
	}
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains project-level statistics.
type ProjectSummary struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Scenes    int    `json:"scenes"`
	Resources int    `json:"resources"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"`
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func newCheck(id, name, group string, issues []string, severity string) HealthCheck {
	status := statusPass
	if len(issues) > 0 {
		status = severity
	}
	return HealthCheck{RuleID: id, Name: name, Group: group, Status: status, IssueCount: len(issues), Details: issues}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	out := buildDoctorOutput(cmd.Context(), cmdCtx)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, out)
	default:
		return renderDoctorText(r, out)
	}
}

func buildDoctorOutput(ctx context.Context, cmdCtx *CommandContext) *DoctorOutput {
	cfg := cmdCtx.Cfg
	var checks []HealthCheck
	var summary ProjectSummary

	var cfgIssues []string
	if config.GetConfigFileUsed() == "" {
		cfgIssues = append(cfgIssues, "no dreamtool.yaml found, using defaults")
	}
	checks = append(checks, newCheck("DC01", "Configuration file", "configuration", cfgIssues, statusWarn))

	p, err := loadProjectForDoctor(cfg)
	if err != nil {
		checks = append(checks, newCheck("DP01", "Project file readable", "project", []string{err.Error()}, statusError))
	} else {
		snap := p.Snapshot()
		summary = ProjectSummary{Name: snap.Name, Path: p.Path(), Scenes: len(snap.Scenes), Resources: len(snap.Resources)}
		checks = append(checks,
			newCheck("DP01", "Project file readable", "project", nil, statusError),
			newCheck("DP02", "Unique identifiers", "project", duplicateIdentifiers(snap), statusWarn),
			newCheck("DP03", "Named items", "project", unnamedItems(snap), statusWarn),
		)
	}

	prefChecks, toolPath := preferenceChecks(ctx, cmdCtx)
	checks = append(checks, prefChecks...)
	checks = append(checks,
		newCheck("DE03", "dream executable", "environment", toolIssues(toolPath), statusWarn),
		newCheck("DE04", "UI port available", "environment", portIssues(cfg.UI.Port), statusWarn),
	)

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}
	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

func loadProjectForDoctor(cfg *config.Config) (*project.Project, error) {
	if err := cfg.ValidateProject(); err != nil {
		return nil, err
	}
	return project.Load(cfg.ProjectPath)
}

func duplicateIdentifiers(snap project.Snapshot) []string {
	var issues []string
	seen := make(map[string]string)
	check := func(kind string, items []project.Item) {
		for _, it := range items {
			key := kind + "/" + it.Identifier
			if first, ok := seen[key]; ok {
				issues = append(issues, fmt.Sprintf("%s %s is used by %q and %q; only the first is reachable", kind, it.Identifier, first, it.Name))
				continue
			}
			seen[key] = it.Name
		}
	}
	check("scene", snap.Scenes)
	check("resource", snap.Resources)
	return issues
}

func unnamedItems(snap project.Snapshot) []string {
	var issues []string
	for _, it := range snap.Scenes {
		if strings.TrimSpace(it.Name) == "" {
			issues = append(issues, "scene "+it.Identifier+" has no name")
		}
	}
	for _, it := range snap.Resources {
		if strings.TrimSpace(it.Name) == "" {
			issues = append(issues, "resource "+it.Identifier+" has no name")
		}
	}
	return issues
}

// preferenceChecks also returns the effective dream executable path.
func preferenceChecks(ctx context.Context, cmdCtx *CommandContext) ([]HealthCheck, string) {
	toolPath := cmdCtx.Cfg.ToolPath
	if toolPath == "" {
		toolPath = prefs.DefaultToolPath
	}

	store, cleanup, err := cmdCtx.OpenPrefs(ctx)
	if err != nil {
		return []HealthCheck{newCheck("DE01", "Preferences store", "environment", []string{err.Error()}, statusError)}, toolPath
	}
	defer cleanup()

	p := cmdCtx.Preferences(store)
	if stored, err := p.ToolPath(ctx); err == nil {
		toolPath = stored
	}

	var themeIssues []string
	theme, err := p.Theme(ctx)
	switch {
	case err != nil:
		themeIssues = append(themeIssues, err.Error())
	case !prefs.ValidTheme(theme):
		themeIssues = append(themeIssues, fmt.Sprintf("stored theme %q is not available", theme))
	}
	return []HealthCheck{
		newCheck("DE01", "Preferences store", "environment", nil, statusError),
		newCheck("DE02", "Theme", "environment", themeIssues, statusWarn),
	}, toolPath
}

func toolIssues(path string) []string {
	if _, err := exec.LookPath(path); err != nil {
		return []string{fmt.Sprintf("%s not found", path)}
	}
	return nil
}

func portIssues(port int) []string {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return []string{fmt.Sprintf("port %d is in use", port)}
	}
	_ = ln.Close()
	return nil
}

// calculateHealthScore starts at 100 and subtracts per issue, errors double.
func calculateHealthScore(checks []HealthCheck) int {
	score := 100
	for _, check := range checks {
		switch check.Status {
		case statusError:
			score -= check.IssueCount * 20
		case statusWarn:
			score -= check.IssueCount * 5
		}
	}
	return max(score, 0)
}

// generateRecommendations creates one hint per failing check.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		if rec := getRecommendation(check.RuleID); rec != "" {
			recommendations = append(recommendations, rec)
		}
	}
	return recommendations
}

func getRecommendation(ruleID string) string {
	switch ruleID {
	case "DC01":
		return "Create dreamtool.yaml next to the project to pin paths and UI settings"
	case "DP01":
		return "Point --project or 'project' in dreamtool.yaml at a valid project file"
	case "DP02":
		return "Give every scene and resource its own uuid"
	case "DP03":
		return "Name unnamed scenes and resources so they can be found in the tree"
	case "DE01":
		return "Check prefs_path: it must be a writable file or a reachable postgres:// URL"
	case "DE02":
		return "Pick a theme with 'dreamtool prefs set theme <name>'"
	case "DE03":
		return "Set the executable with 'dreamtool prefs set dream-bin <path>'"
	case "DE04":
		return "Choose another port with --port or ui.port"
	default:
		return ""
	}
}

func statusLabel(status string) string {
	switch status {
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "PASS"
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println(styles.Header.Render("dreamtool health report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 45)))
	if out.Summary.Path != "" {
		r.Printf("   %s: %d scenes, %d resources\n", out.Summary.Name, out.Summary.Scenes, out.Summary.Resources)
		r.Println(styles.Muted.Render("   " + out.Summary.Path))
	}
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Key.Render("   " + titleCaser.String(currentGroup)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case statusWarn:
			icon = styles.Warning.Render("!")
		case statusError:
			icon = styles.Error.Render("✗")
		}
		r.Printf("   %s %s: %s\n", icon, check.RuleID, check.Name)
		for _, detail := range check.Details {
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))

	if len(out.Recommendations) > 0 {
		r.Println("")
		r.Println(styles.Header.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
	}
	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println(output.FormatHeader(1, "dreamtool health report"))

	if out.Summary.Path != "" {
		r.Println(output.FormatHeader(2, "Project"))
		r.Println(output.FormatKeyValue("Name", out.Summary.Name))
		r.Println(output.FormatKeyValue("Path", out.Summary.Path))
		r.Println(output.FormatKeyValue("Scenes", fmt.Sprintf("%d", out.Summary.Scenes)))
		r.Println(output.FormatKeyValue("Resources", fmt.Sprintf("%d", out.Summary.Resources)))
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Health Checks"))
	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(output.FormatHeader(3, titleCaser.String(currentGroup)))
		}
		r.Printf("- **[%s]** %s: %s\n", statusLabel(check.Status), check.RuleID, check.Name)
		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Health Score"))
	r.Printf("**%d/100**\n", out.Score)

	if len(out.Recommendations) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
	}
	return nil
}
