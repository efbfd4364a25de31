package views

import (
	"fmt"
	"slices"

	"github.com/pterm/pterm"
)

type RunSummaryItem struct {
	Rows           int
	Applied        int
	ParseRejected  int
	EngineRejected int
	Reasons        map[string]int
	Accounts       int
}

func RenderRunSummary(item RunSummaryItem) {
	pterm.DefaultSection.Println("Run Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Rows", fmt.Sprintf("%d", item.Rows)},
		{"Applied", fmt.Sprintf("%d", item.Applied)},
		{"Parse rejected", fmt.Sprintf("%d", item.ParseRejected)},
		{"Engine rejected", fmt.Sprintf("%d", item.EngineRejected)},
		{"Accounts", fmt.Sprintf("%d", item.Accounts)},
	}

	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()

	if len(item.Reasons) > 0 {
		pterm.DefaultSection.Println("Rejections by Reason")

		reasonData := pterm.TableData{
			{"Reason", "Count"},
		}
		reasons := make([]string, 0, len(item.Reasons))
		for reason := range item.Reasons {
			reasons = append(reasons, reason)
		}
		slices.Sort(reasons)
		for _, reason := range reasons {
			reasonData = append(reasonData, []string{reason, fmt.Sprintf("%d", item.Reasons[reason])})
		}

		pterm.DefaultTable.WithHasHeader().WithData(reasonData).Render()
	}

	rejected := item.ParseRejected + item.EngineRejected
	if rejected == 0 {
		pterm.Success.Println("✓ All rows applied")
	} else {
		pterm.Warning.Printf("⚠ %d of %d rows rejected\n", rejected, item.Rows)
	}
}
