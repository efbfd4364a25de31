package views

import (
	"github.com/pterm/pterm"
)

type AccountListItem struct {
	Client    string
	Available string
	Held      string
	Total     string
	Locked    bool
}

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(items []AccountListItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("No accounts were referenced")
		return nil
	}

	headers := []string{"Client", "Available", "Held", "Total", "Locked"}
	tableData := pterm.TableData{headers}

	for _, item := range items {
		client := item.Client
		available := item.Available
		held := item.Held
		total := item.Total
		locked := "no"

		if item.Locked { // locked rows in red
			client = pterm.Red(client)
			available = pterm.Red(available)
			held = pterm.Red(held)
			total = pterm.Red(total)
			locked = pterm.Red("yes")
		}

		tableData = append(tableData, []string{client, available, held, total, locked})
	}

	pterm.DefaultSection.Printf("Account Balances")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(items))

	return nil
}
