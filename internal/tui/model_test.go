package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yettinmoor/bard/internal/client"
)

type fakeDaemon struct {
	bar      string
	barErr   error
	ok       bool
	report   string
	updates  int
	restarts int
}

func (f *fakeDaemon) UpdateAll(context.Context) (bool, string, error) {
	f.updates++
	return f.ok, f.report, nil
}

func (f *fakeDaemon) Restart(context.Context) error {
	f.restarts++
	return nil
}

func (f *fakeDaemon) DrawBar(context.Context) (string, error) {
	return f.bar, f.barErr
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// collect executes cmd, flattening batches. Callers must not pass
// commands that contain timers.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func TestBarMsgSetsRunning(t *testing.T) {
	m := NewModel(&fakeDaemon{}, time.Second)

	next, _ := m.Update(BarMsg{Bar: " 12:00 | 80% "})
	got := next.(Model)
	if got.bar != " 12:00 | 80% " {
		t.Errorf("bar = %q", got.bar)
	}
	if got.status != statusRunning {
		t.Errorf("status = %v, want running", got.status)
	}
	if !strings.Contains(got.View(), "12:00 | 80%") {
		t.Error("View() does not show the bar")
	}
}

func TestUpdateAllKeyRunsAndRedraws(t *testing.T) {
	d := &fakeDaemon{ok: true, report: "[a]: exit status 0\n", bar: "new"}
	m := NewModel(d, time.Second)

	next, cmd := m.Update(keyMsg('u'))
	m = next.(Model)
	if !m.busy {
		t.Error("model should be busy while updating")
	}

	var report ReportMsg
	for _, msg := range collect(cmd) {
		if r, ok := msg.(ReportMsg); ok {
			report = r
		}
	}
	if d.updates != 1 {
		t.Fatalf("UpdateAll called %d times, want 1", d.updates)
	}

	next, cmd = m.Update(report)
	m = next.(Model)
	if m.busy {
		t.Error("model still busy after report")
	}
	if m.report != "[a]: exit status 0\n" {
		t.Errorf("report = %q", m.report)
	}
	if cmd == nil {
		t.Fatal("successful update should redraw")
	}
	bar, ok := cmd().(BarMsg)
	if !ok || bar.Bar != "new" {
		t.Errorf("redraw = %#v, want BarMsg{new}", bar)
	}
}

func TestDegradedReportDoesNotRedraw(t *testing.T) {
	m := NewModel(&fakeDaemon{}, time.Second)

	next, cmd := m.Update(ReportMsg{OK: false, Report: "parse error: expected `blocks` hash\n"})
	m = next.(Model)
	if cmd != nil {
		t.Error("degraded update should not redraw")
	}
	if m.status != statusDegraded {
		t.Errorf("status = %v, want degraded", m.status)
	}
	if m.problem != "parse error: expected `blocks` hash" {
		t.Errorf("problem = %q", m.problem)
	}
}

func TestBarErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus daemonStatus
		wantErr    bool
	}{
		{"degraded", fmt.Errorf("%w: parse error: x", client.ErrDegraded), statusDegraded, false},
		{"not running", client.ErrDaemonNotRunning, statusDown, true},
		{"other", errors.New("boom"), statusUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(&fakeDaemon{}, time.Second)
			next, _ := m.Update(BarMsg{Err: tt.err})
			got := next.(Model)
			if got.status != tt.wantStatus {
				t.Errorf("status = %v, want %v", got.status, tt.wantStatus)
			}
			if (got.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", got.err, tt.wantErr)
			}
		})
	}
}

func TestRestartKey(t *testing.T) {
	d := &fakeDaemon{}
	m := NewModel(d, time.Second)

	_, cmd := m.Update(keyMsg('r'))
	for _, msg := range collect(cmd) {
		if sent, ok := msg.(RestartSentMsg); ok && sent.Err != nil {
			t.Errorf("restart error = %v", sent.Err)
		}
	}
	if d.restarts != 1 {
		t.Errorf("Restart called %d times, want 1", d.restarts)
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	d := &fakeDaemon{}
	m := NewModel(d, time.Second)
	m.busy = true

	_, cmd := m.Update(keyMsg('u'))
	if cmd != nil {
		t.Error("update key should be ignored while busy")
	}

	_, cmd = m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("quit should work while busy")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewTruncatesToWidth(t *testing.T) {
	m := NewModel(&fakeDaemon{}, time.Second)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	m = next.(Model)
	next, _ = m.Update(BarMsg{Bar: strings.Repeat("x", 200)})
	m = next.(Model)

	if strings.Contains(m.View(), strings.Repeat("x", 100)) {
		t.Error("View() did not truncate a long bar")
	}
}
