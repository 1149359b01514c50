package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/pvestack/internal/config"
	"github.com/imamik/pvestack/internal/provisioning"
)

var (
	summaryColorGreen = lipgloss.Color("#22c55e")
	summaryColorRed   = lipgloss.Color("#ef4444")
	summaryColorBlue  = lipgloss.Color("#3b82f6")
	summaryColorDim   = lipgloss.Color("#6b7280")
	summaryColorWhite = lipgloss.Color("#f9fafb")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorWhite)

	summarySectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorBlue)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)

	summaryOKStyle = lipgloss.NewStyle().
			Foreground(summaryColorGreen)

	summaryFailStyle = lipgloss.NewStyle().
				Foreground(summaryColorRed)
)

// printProvisionSummary renders the outcome of a provisioning run,
// including the environment lines a later update invocation needs.
func printProvisionSummary(cfg *config.Config, result *provisioning.OrchestrationResult) {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render(fmt.Sprintf("  pvestack: %s", cfg.App.Name)))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	if result.Primary != nil {
		renderTarget(&b, "Primary", result.Primary)
	}
	if result.Fallback != nil {
		renderTarget(&b, "Fallback", result.Fallback)
	}

	if result.Authoritative != nil {
		b.WriteString("\n")
		b.WriteString(summaryOKStyle.Render(fmt.Sprintf("  Stack running on instance %d (%s)",
			result.Authoritative.ID, result.Authoritative.Tier)))
		b.WriteString("\n\n")
		b.WriteString(summarySectionStyle.Render("  For later updates"))
		b.WriteString("\n")
		if result.Primary != nil && result.Primary.Status == provisioning.StatusInstallSucceeded {
			fmt.Fprintf(&b, "    export PVESTACK_CTID=%d\n", result.Primary.ID)
		}
		if result.Fallback != nil {
			fmt.Fprintf(&b, "    export PVESTACK_FALLBACK_CTID=%d\n", result.Fallback.ID)
		}
	} else {
		b.WriteString("\n")
		b.WriteString(summaryFailStyle.Render("  Provisioning did not complete; instances above are left for inspection."))
		b.WriteString("\n")
	}

	fmt.Print(b.String())
}

// renderTarget renders one instance's row block.
func renderTarget(b *strings.Builder, label string, target *provisioning.Target) {
	b.WriteString(summarySectionStyle.Render("  " + label))
	b.WriteString("\n")
	fmt.Fprintf(b, "    Instance:   %d (%s)\n", target.ID, target.Hostname)
	fmt.Fprintf(b, "    Tier:       %s\n", target.Tier)
	if target.Address != "" {
		fmt.Fprintf(b, "    Address:    %s\n", target.Address)
	}
	fmt.Fprintf(b, "    Workload:   %s\n", target.WorkloadRoot)
	b.WriteString("    Status:     ")
	b.WriteString(renderStatus(target.Status))
	b.WriteString("\n")
}

// renderStatus colors a target status.
func renderStatus(status provisioning.TargetStatus) string {
	switch status {
	case provisioning.StatusInstallSucceeded:
		return summaryOKStyle.Render(string(status))
	case provisioning.StatusInstallFailed:
		return summaryFailStyle.Render(string(status))
	default:
		return summaryDimStyle.Render(string(status))
	}
}

// printUpdateSummary reports a completed update.
func printUpdateSummary(cfg *config.Config, target *provisioning.Target) {
	fmt.Printf("\n%s\n", summaryOKStyle.Render(
		fmt.Sprintf("  %s updated on instance %d (%s)", cfg.App.Name, target.ID, target.Tier)))
}
