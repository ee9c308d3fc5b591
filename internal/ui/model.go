// Package ui implements the trader-ui visualizer: a Bubble Tea program
// that drives a Trader forward one simulated day per frame and renders the
// markets it trades on plus its accumulated history.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/trader"
	"github.com/fxbourse/market-sim/internal/ui/styles"
)

// PanelFocus identifies which panel receives directional key input.
type PanelFocus int

const (
	FocusMarkets PanelFocus = iota
	FocusHistory
)

var (
	keyQuit       = key.NewBinding(key.WithKeys("ctrl+c", "q"))
	keyPause      = key.NewBinding(key.WithKeys(" "))
	keyTab        = key.NewBinding(key.WithKeys("tab"))
	keySelectUp   = key.NewBinding(key.WithKeys("up", "k"))
	keySelectDown = key.NewBinding(key.WithKeys("down", "j"))
)

// Model is the trader-ui Bubble Tea model.
type Model struct {
	trader         *trader.Trader
	minuteInterval time.Duration

	selectedMarket int
	focusedPanel   PanelFocus

	width  int
	height int
	ready  bool

	paused bool
	status string
}

// New constructs a Model that, once the program starts, advances tr by
// one simulated day per frame, invoking its strategy every minuteInterval
// within that day.
func New(tr *trader.Trader, minuteInterval time.Duration) *Model {
	return &Model{trader: tr, minuteInterval: minuteInterval}
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

type tickMsg struct{}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyPause):
			m.paused = !m.paused
		case key.Matches(msg, keyTab):
			m.focusedPanel = (m.focusedPanel + 1) % 2
		case key.Matches(msg, keySelectUp):
			if m.focusedPanel == FocusMarkets && m.selectedMarket > 0 {
				m.selectedMarket--
			}
		case key.Matches(msg, keySelectDown):
			if m.focusedPanel == FocusMarkets && m.selectedMarket < len(m.trader.Markets())-1 {
				m.selectedMarket++
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	case tickMsg:
		if !m.paused {
			m.trader.ApplyStrategy(1, m.minuteInterval)
			m.status = fmt.Sprintf("day %d", len(m.trader.GetHistory())-1)
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.ready {
		return "initializing..."
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	marketsPanel := m.renderMarkets(leftWidth, m.height-3)
	historyPanel := m.renderHistory(rightWidth, m.height-3)

	body := lipgloss.JoinHorizontal(lipgloss.Top, marketsPanel, historyPanel)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) renderMarkets(width, height int) string {
	var content strings.Builder
	header := fmt.Sprintf("%-6s %-6s %12s %12s %12s", "Mkt", "Kind", "Avail", "Buy", "Sell")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	for i, mkt := range m.trader.Markets() {
		for _, label := range mkt.GetGoods() {
			if label.Kind == good.EUR {
				continue
			}
			row := fmt.Sprintf("%-6s %-6s %12s %12s %12s",
				truncate(mkt.Name(), 6), label.Kind.String(),
				label.QuantityAvailable.StringFixed(2),
				label.ExchangeRateBuy.StringFixed(4),
				label.ExchangeRateSell.StringFixed(4))

			style := lipgloss.NewStyle()
			if i == m.selectedMarket {
				style = styles.BuyStyle
			}
			content.WriteString(style.Render(row))
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if m.focusedPanel == FocusMarkets {
		panelStyle = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("Markets", m.focusedPanel == FocusMarkets)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(width - 2).Height(height - 2).Render(panel)
}

func (m *Model) renderHistory(width, height int) string {
	var content strings.Builder
	header := fmt.Sprintf("%-5s %12s %12s %12s %12s", "Day", "EUR", "USD", "YEN", "YUAN")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	history := m.trader.GetHistory()
	start := 0
	if max := height - 3; len(history) > max && max > 0 {
		start = len(history) - max
	}
	for _, h := range history[start:] {
		row := fmt.Sprintf("%-5d %12s %12s %12s %12s",
			h.Day, h.EUR.StringFixed(2), h.USD.StringFixed(2), h.YEN.StringFixed(2), h.YUAN.StringFixed(2))
		content.WriteString(row)
		content.WriteString("\n")
	}

	panelStyle := styles.PanelStyle
	if m.focusedPanel == FocusHistory {
		panelStyle = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle(fmt.Sprintf("History — %s", m.trader.Name()), m.focusedPanel == FocusHistory)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(width - 2).Height(height - 2).Render(panel)
}

func (m *Model) renderStatusBar() string {
	help := styles.StatusBarKeyStyle.Render("tab") + " panels  " +
		styles.StatusBarKeyStyle.Render("space") + " pause  " +
		styles.StatusBarKeyStyle.Render("q") + " quit"
	status := m.status
	if m.paused {
		status = "paused"
	}
	return styles.StatusBarStyle.Width(m.width).Render(help + "  │  " + status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
