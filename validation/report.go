package validation

import (
	"fmt"
	"strings"
)

// Report renders the findings of the last validation as human readable text.
func (v *Validator) Report() string {
	return Report(v.findings)
}

// Report renders findings, grouped by severity, followed by a summary.
func Report(findings []Finding) string {
	if len(findings) == 0 {
		return "Validation passed: No issues found."
	}

	var errors, warnings, infos []Finding
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			errors = append(errors, f)
		case SeverityWarning:
			warnings = append(warnings, f)
		case SeverityInfo:
			infos = append(infos, f)
		}
	}

	lines := []string{"BPMN Validation Report", strings.Repeat("=", 25), ""}

	appendSection := func(heading string, findings []Finding) {
		if len(findings) == 0 {
			return
		}
		lines = append(lines, heading, "")
		for _, f := range findings {
			lines = append(lines, fmt.Sprintf("  • %s (Element: %s)", f.Message, f.ElementId))
		}
		lines = append(lines, "")
	}

	appendSection("ERRORS:", errors)
	appendSection("WARNINGS:", warnings)
	appendSection("INFO:", infos)

	lines = append(lines,
		"SUMMARY:",
		fmt.Sprintf("  Errors: %d", len(errors)),
		fmt.Sprintf("  Warnings: %d", len(warnings)),
		fmt.Sprintf("  Info: %d", len(infos)),
		fmt.Sprintf("  Total Issues: %d", len(findings)),
	)

	return strings.Join(lines, "\n")
}
