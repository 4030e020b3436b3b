package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, tuned for reading code on a dark terminal.
var (
	Primary   = lipgloss.Color("#60A5FA") // Sky Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	BgLine    = lipgloss.Color("#1E3A5F") // Current line
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ActiveCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// Code listing
var (
	LineNumber = lipgloss.NewStyle().
			Foreground(TextDim)

	CodeLine = lipgloss.NewStyle().
			Foreground(Text)

	CurrentLine = lipgloss.NewStyle().
			Background(BgLine).
			Foreground(Text).
			Bold(true)

	NextLine = lipgloss.NewStyle().
			Foreground(Accent)

	Changed = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Partial = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	TabActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)
)

// Tally bar segments
var (
	BarRight = lipgloss.NewStyle().Background(Success)
	BarWrong = lipgloss.NewStyle().Background(Error)
	BarOpen  = lipgloss.NewStyle().Background(Border)
)
