// Package tui implements the interactive daily habit checklist.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/habitat/internal/cli"
	"github.com/theirongolddev/habitat/internal/habit"
	"github.com/theirongolddev/habitat/internal/model"
)

// Tracker is the subset of the habit service the checklist drives.
type Tracker interface {
	Today(ctx context.Context) ([]model.HabitStatus, float64, error)
	Apply(ctx context.Context, h model.Habit, a habit.Action, day time.Time) (model.HabitEntry, error)
	Toggle(ctx context.Context, h model.Habit, day time.Time) (model.HabitEntry, error)
}

type statusMsg struct {
	statuses []model.HabitStatus
	progress float64
	err      error
}

// Checklist is a tea.Model listing today's habits.
type Checklist struct {
	ctx      context.Context
	tracker  Tracker
	day      time.Time
	statuses []model.HabitStatus
	progress float64
	cursor   int
	loaded   bool
	err      error
	bar      progress.Model
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorAccent)
	cursorStyle = lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	errStyle    = lipgloss.NewStyle().Foreground(cli.ColorRed)
)

// NewChecklist returns a checklist for day.
func NewChecklist(ctx context.Context, tr Tracker, day time.Time) Checklist {
	return Checklist{
		ctx:     ctx,
		tracker: tr,
		day:     day,
		bar: progress.New(
			progress.WithSolidFill(string(cli.ColorGreen)),
			progress.WithWidth(30),
		),
	}
}

// Init implements tea.Model.
func (c Checklist) Init() tea.Cmd {
	return c.load
}

func (c Checklist) load() tea.Msg {
	statuses, pct, err := c.tracker.Today(c.ctx)
	return statusMsg{statuses: statuses, progress: pct, err: err}
}

// Update implements tea.Model.
func (c Checklist) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		c.loaded = true
		c.err = msg.err
		if msg.err == nil {
			c.statuses = msg.statuses
			c.progress = msg.progress
			if c.cursor >= len(c.statuses) {
				c.cursor = max(len(c.statuses)-1, 0)
			}
		}
		return c, nil

	case tea.WindowSizeMsg:
		c.bar.Width = min(max(msg.Width-20, 10), 40)
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return c, tea.Quit
		case "up", "k":
			if c.cursor > 0 {
				c.cursor--
			}
		case "down", "j":
			if c.cursor < len(c.statuses)-1 {
				c.cursor++
			}
		case " ", "enter", "x":
			return c, c.mutate(func(h model.Habit) error {
				_, err := c.tracker.Toggle(c.ctx, h, c.day)
				return err
			})
		case "+", "l", "right":
			return c, c.act(habit.Action{Kind: habit.Increment})
		case "-", "h", "left":
			return c, c.act(habit.Action{Kind: habit.Decrement})
		case "r":
			return c, c.act(habit.Action{Kind: habit.Reset})
		}
	}
	return c, nil
}

func (c Checklist) act(a habit.Action) tea.Cmd {
	return c.mutate(func(h model.Habit) error {
		_, err := c.tracker.Apply(c.ctx, h, a, c.day)
		return err
	})
}

// mutate runs fn against the selected habit, then reloads statuses.
func (c Checklist) mutate(fn func(model.Habit) error) tea.Cmd {
	if len(c.statuses) == 0 {
		return nil
	}
	h := c.statuses[c.cursor].Habit
	return func() tea.Msg {
		if err := fn(h); err != nil {
			return statusMsg{err: err}
		}
		return c.load()
	}
}

// View implements tea.Model.
func (c Checklist) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(titleStyle.Render("Habits  " + c.day.Format("Mon Jan 2")))
	b.WriteString("\n\n")

	switch {
	case !c.loaded:
		b.WriteString("  Loading...\n")
	case len(c.statuses) == 0:
		b.WriteString(helpStyle.Render("  No habits yet. Add one with `habitat habits add NAME`."))
		b.WriteString("\n")
	default:
		for i, s := range c.statuses {
			pointer := "  "
			if i == c.cursor {
				pointer = cursorStyle.Render("> ")
			}
			fmt.Fprintf(&b, "  %s%s %-24s %d/%d\n",
				pointer, cli.RenderCheck(s.Completed, habit.Fraction(s.Count, s.Habit.TargetCount)), s.Habit.Name, s.Count, s.Habit.TargetCount)
		}
		b.WriteString("\n  ")
		b.WriteString(c.bar.ViewAs(c.progress / 100))
		b.WriteString("\n")
	}

	if c.err != nil {
		b.WriteString("\n  ")
		b.WriteString(errStyle.Render(c.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  space toggle  +/- count  r reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the checklist on the terminal.
func Run(ctx context.Context, tr Tracker, day time.Time) error {
	p := tea.NewProgram(NewChecklist(ctx, tr, day), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("checklist: %w", err)
	}
	return nil
}
