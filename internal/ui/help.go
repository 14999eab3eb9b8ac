package ui

import "github.com/charmbracelet/lipgloss"

var helpStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("12")).
	Padding(1, 2)

// RenderHelp returns the help overlay text.
func RenderHelp() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("duffydiff — Keybindings")

	help := title + "\n\n" +
		"Navigation\n" +
		"  j/k         Move down/up\n" +
		"  h/l         Switch panel (block list ↔ diff)\n" +
		"  G           Jump to bottom\n" +
		"  g           Jump to top\n" +
		"  Ctrl+d/u    Half-page down/up\n" +
		"  Ctrl+f/b    Full-page down/up\n" +
		"  n or ]      Next difference\n" +
		"  N or [      Previous difference\n" +
		"  Enter       Go to selected difference\n" +
		"\n" +
		"Merging\n" +
		"  >           Copy current block left → right\n" +
		"  <           Copy current block right → left\n" +
		"  M           Copy every block from the active side\n" +
		"  u           Undo\n" +
		"  Ctrl+r      Redo\n" +
		"\n" +
		"Editing\n" +
		"  Tab         Switch active side\n" +
		"  i           Edit active side (Esc to finish)\n" +
		"  o           Open a file into the active side\n" +
		"  w           Save the active side\n" +
		"  F5 or r     Compare now\n" +
		"  a           Toggle auto-compare\n" +
		"\n" +
		"Actions\n" +
		"  e           Export report\n" +
		"  q           Quit\n" +
		"  ?           Toggle this help\n" +
		"\n" +
		"Press ? or Esc to close"

	return helpStyle.Render(help)
}
