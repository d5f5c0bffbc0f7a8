package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	coreapp "inscope/internal/core/app"
)

func runUI(app *coreapp.App) error {
	m := initialModel(app.Table)
	p := tea.NewProgram(m, tea.WithAltScreen())

	sendUpdate := func(update coreapp.Update) {
		p.Send(updateMsg{
			unresolved: update.Unresolved,
			unused:     update.Unused,
			classes:    app.Table.Classes(),
			classCount: update.ClassCount,
			fileCount:  update.FileCount,
		})
	}

	app.SetUpdateHandler(func(update coreapp.Update) {
		sendUpdate(update)
	})

	go func() {
		sendUpdate(app.CurrentUpdate())
	}()

	_, err := p.Run()
	return err
}
