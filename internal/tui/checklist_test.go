package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/habitat/internal/habit"
	"github.com/theirongolddev/habitat/internal/model"
)

type fakeTracker struct {
	habits  []model.Habit
	counts  map[string]int
	actions []habit.ActionKind
}

func newFake(names ...string) *fakeTracker {
	f := &fakeTracker{counts: map[string]int{}}
	for _, n := range names {
		f.habits = append(f.habits, model.Habit{Name: n, TargetCount: 2})
	}
	return f
}

func (f *fakeTracker) Today(context.Context) ([]model.HabitStatus, float64, error) {
	var out []model.HabitStatus
	for _, h := range f.habits {
		c := f.counts[h.Name]
		out = append(out, model.HabitStatus{Habit: h, Count: c, Completed: c >= h.TargetCount})
	}
	return out, habit.Progress(out), nil
}

func (f *fakeTracker) Apply(_ context.Context, h model.Habit, a habit.Action, _ time.Time) (model.HabitEntry, error) {
	f.actions = append(f.actions, a.Kind)
	switch a.Kind {
	case habit.Increment:
		f.counts[h.Name]++
	case habit.Decrement:
		if f.counts[h.Name] > 0 {
			f.counts[h.Name]--
		}
	case habit.Reset:
		f.counts[h.Name] = 0
	}
	return model.HabitEntry{Count: f.counts[h.Name]}, nil
}

func (f *fakeTracker) Toggle(_ context.Context, h model.Habit, _ time.Time) (model.HabitEntry, error) {
	if f.counts[h.Name] >= h.TargetCount {
		f.counts[h.Name] = 0
	} else {
		f.counts[h.Name] = h.TargetCount
	}
	return model.HabitEntry{Count: f.counts[h.Name]}, nil
}

// step feeds msg to the model and runs any returned command once.
func step(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	m, cmd := m.Update(msg)
	if cmd != nil {
		if next := cmd(); next != nil {
			m, _ = m.Update(next)
		}
	}
	return m
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestChecklistTogglesSelectedHabit(t *testing.T) {
	f := newFake("read", "walk")
	c := NewChecklist(context.Background(), f, time.Now())

	var m tea.Model = c
	m = step(t, m, c.Init()())
	m = step(t, m, key('j'))
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if f.counts["walk"] != 2 || f.counts["read"] != 0 {
		t.Fatalf("counts = %v, want walk toggled only", f.counts)
	}
	got := m.(Checklist)
	if got.progress != 50 {
		t.Fatalf("progress = %v, want 50", got.progress)
	}
}

func TestChecklistCountKeys(t *testing.T) {
	f := newFake("water")
	var m tea.Model = NewChecklist(context.Background(), f, time.Now())
	m = step(t, m, m.Init()())

	m = step(t, m, key('+'))
	m = step(t, m, key('+'))
	m = step(t, m, key('-'))
	m = step(t, m, key('r'))

	want := []habit.ActionKind{habit.Increment, habit.Increment, habit.Decrement, habit.Reset}
	if len(f.actions) != len(want) {
		t.Fatalf("actions = %v, want %v", f.actions, want)
	}
	for i := range want {
		if f.actions[i] != want[i] {
			t.Fatalf("actions[%d] = %s, want %s", i, f.actions[i], want[i])
		}
	}
	_ = m
}

func TestChecklistCursorStaysInRange(t *testing.T) {
	f := newFake("a", "b")
	var m tea.Model = NewChecklist(context.Background(), f, time.Now())
	m = step(t, m, m.Init()())

	for n := 0; n < 5; n++ {
		m = step(t, m, key('j'))
	}
	if c := m.(Checklist).cursor; c != 1 {
		t.Fatalf("cursor = %d after moving down, want 1", c)
	}
	for n := 0; n < 5; n++ {
		m = step(t, m, key('k'))
	}
	if c := m.(Checklist).cursor; c != 0 {
		t.Fatalf("cursor = %d after moving up, want 0", c)
	}
}

func TestChecklistEmptyView(t *testing.T) {
	f := newFake()
	var m tea.Model = NewChecklist(context.Background(), f, time.Now())
	m = step(t, m, m.Init()())

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !strings.Contains(m.View(), "No habits yet") {
		t.Fatalf("view missing empty hint:\n%s", m.View())
	}
}

func TestChecklistQuits(t *testing.T) {
	var m tea.Model = NewChecklist(context.Background(), newFake("a"), time.Now())
	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}
