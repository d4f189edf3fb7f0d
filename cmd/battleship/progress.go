package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsobakin/battleships/internal/match"
)

type matchDoneMsg match.Record

type simulationDoneMsg struct {
	err error
}

type tickMsg time.Time

type progressModel struct {
	total     int
	summary   summary
	startTime time.Time
	recent    []string
	updates   chan tea.Msg
	cancel    context.CancelFunc
	err       error
}

func newProgressModel(total int, updates chan tea.Msg, cancel context.CancelFunc) progressModel {
	return progressModel{
		total:     total,
		startTime: time.Now(),
		updates:   updates,
		cancel:    cancel,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForUpdate(updates chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
	case tickMsg:
		return m, tickCmd()
	case matchDoneMsg:
		r := match.Record(msg)
		m.summary.add(r)

		line := fmt.Sprintf("Seed %d: %s won in %d turns", r.Seed, r.Verdict.Winner, r.Verdict.Turns)
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > 10 {
			m.recent = m.recent[:10]
		}
		return m, waitForUpdate(m.updates)
	case simulationDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var sb strings.Builder

	duration := time.Since(m.startTime)
	gamesPerSec := 0.0
	if duration.Seconds() >= 1 {
		gamesPerSec = float64(m.summary.games) / duration.Seconds()
	}

	fmt.Fprintf(&sb, "Matches:        %d/%d\n", m.summary.games, m.total)
	fmt.Fprintf(&sb, "Player 1 wins:  %d\n", m.summary.wins[0])
	fmt.Fprintf(&sb, "Player 2 wins:  %d\n", m.summary.wins[1])
	fmt.Fprintf(&sb, "Mean turns:     %.1f\n", m.summary.meanTurns())
	fmt.Fprintf(&sb, "Duration:       %s\n", duration.Round(time.Second))
	fmt.Fprintf(&sb, "Matches/Sec:    %.2f\n\n", gamesPerSec)

	sb.WriteString("Recent Matches:\n")
	for _, line := range m.recent {
		sb.WriteString(line + "\n")
	}

	if m.err != nil {
		fmt.Fprintf(&sb, "\nError: %v\n", m.err)
	}

	sb.WriteString("\nPress q to quit.\n")
	return sb.String()
}
