package cmd

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/rzbill/opsweep/pkg/cli/format"
	"github.com/rzbill/opsweep/pkg/types"
)

// renderReport renders a cleanup report as a table.
func renderReport(report *types.Report) error {
	if len(report.Results) == 0 {
		fmt.Println("No matching resources found")
		return nil
	}

	rows := [][]string{{"KIND", "TARGET", "NAME", "ACTION", "OUTCOME", "DETAIL"}}
	for _, result := range report.Results {
		detail := result.Detail
		if result.Err != nil {
			detail = result.Error()
		}
		rows = append(rows, []string{
			string(result.Kind),
			result.Target,
			result.Name,
			string(result.Action),
			format.OutcomeLabel(result.Outcome),
			detail,
		})
	}

	table := pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).
		WithData(rows)

	return table.Render()
}
