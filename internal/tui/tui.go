package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/fatih/color"
	"github.com/markusylisiurunen/tulkki/internal/agent"
	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/tidwall/gjson"
)

type agentMsg struct {
	err  error
	done bool
}

func waitAgentCmd(subscription <-chan agent.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-subscription
		if !ok {
			return agentMsg{done: true}
		}
		switch event := event.(type) {
		case *agent.ErrorEvent:
			return agentMsg{err: event.Err}
		default:
			return agentMsg{}
		}
	}
}

type Model struct {
	logger logger.Logger

	viewport  viewport.Model
	textinput textinput.Model

	agent        *agent.Agent
	subscription <-chan agent.Event
	unsubscribe  func()

	lastErr    error
	cancelFunc context.CancelFunc
}

func Initial(logger logger.Logger, chatAgent *agent.Agent) Model {
	m := Model{logger: logger, agent: chatAgent}
	m.subscription, m.unsubscribe = m.agent.Subscribe()
	// init the viewport
	vp := viewport.New(0, 0)
	vp.KeyMap.Up.SetKeys("up")
	vp.KeyMap.Down.SetKeys("down")
	vp.KeyMap.PageUp.SetEnabled(false)
	vp.KeyMap.PageDown.SetEnabled(false)
	vp.KeyMap.HalfPageUp.SetEnabled(false)
	vp.KeyMap.HalfPageDown.SetEnabled(false)
	m.viewport = vp
	// init the textinput
	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "ask anything"
	ti.Focus()
	ti.CharLimit = 1024
	m.textinput = ti
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitAgentCmd(m.subscription))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(agentMsg); ok {
		if msg.done {
			return m, nil
		}
		if msg.err != nil {
			if !errors.Is(msg.err, context.Canceled) {
				m.lastErr = msg.err
				m.logger.Error(msg.err.Error())
			}
			return m, waitAgentCmd(m.subscription)
		}
		m.lastErr = nil
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoBottom()
		return m, waitAgentCmd(m.subscription)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.unsubscribe != nil {
				m.unsubscribe()
			}
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			if _, _, running := m.agent.GetState(); running && m.cancelFunc != nil {
				m.cancelFunc()
				m.cancelFunc = nil
				return m, nil
			}
		}
		if msg.Type == tea.KeyEnter {
			if strings.TrimSpace(m.textinput.Value()) == "" {
				return m, nil
			}
			if m.textinput.Value() == "/clear" {
				m.agent.Reset()
				m.textinput.Reset()
				m.viewport.SetContent("")
				return m, nil
			}
			ctx, cancel := context.WithCancel(context.Background())
			m.cancelFunc = cancel
			m.agent.Send(ctx, m.textinput.Value())
			m.textinput.Reset()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.viewport.SetContent(m.renderContent())
		if m.viewport.PastBottom() {
			m.viewport.GotoBottom()
		}
		m.textinput.Width = msg.Width - 3
		return m, nil
	}
	var cmd1, cmd2 tea.Cmd
	m.viewport, cmd1 = m.viewport.Update(msg)
	m.textinput, cmd2 = m.textinput.Update(msg)
	return m, tea.Batch(cmd1, cmd2)
}

func (m Model) View() string {
	var s string
	s += m.viewport.View()
	s += "\n\n" + m.textinput.View()
	s += "\n\n" + color.New(color.Faint).Sprint(m.renderFooter())
	return s
}

func (m Model) renderContent() string {
	var s string
	messages, _, _ := m.agent.GetState()
	for i, msg := range messages {
		switch msg.Role {
		case llm.RoleUser:
			if i > 0 {
				s += "\n\n"
			}
			content := wrapWithPrefix("› "+msg.Content, "", m.viewport.Width)
			s += color.New(color.Faint).Sprint(strings.TrimSpace(content))
		case llm.RoleAssistant:
			if i > 0 {
				s += "\n\n"
			}
			if msg.Content != "" {
				s += m.renderMarkdown(msg.Content)
			}
			for idx, call := range msg.ToolCalls {
				if msg.Content != "" || idx > 0 {
					s += "\n\n"
				}
				s += color.New(color.FgYellow).Sprint("●") + color.New(color.Bold).Sprintf(" %s", call.Function.Name)
				if summary := summarizeArgs(call.Function.Args); summary != "" {
					s += color.New(color.Faint).Sprintf(" %s", summary)
				}
			}
		}
	}
	return s
}

func (m Model) renderMarkdown(content string) string {
	var margin uint = 0
	dark := styles.DarkStyleConfig
	dark.Document.Color = nil
	dark.Document.Margin = &margin
	dark.H1 = dark.H2
	dark.H1.Prefix = "# "
	dark.Code.Prefix = ""
	dark.Code.Suffix = ""
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStyles(dark),
		glamour.WithWordWrap(m.viewport.Width),
	)
	markdown, _ := renderer.Render(strings.TrimSpace(content))
	return strings.TrimSpace(markdown)
}

func (m Model) renderFooter() string {
	if m.lastErr != nil {
		return fmt.Sprintf("error: %v", m.lastErr)
	}
	_, usage, running := m.agent.GetState()
	meta := fmt.Sprintf("tokens: %d", usage.PromptTokens+usage.CompletionTokens)
	if running {
		return "working... esc to cancel. (" + meta + ")"
	}
	return "/clear to reset, ctrl+c to quit. (" + meta + ")"
}

func summarizeArgs(args string) string {
	if !gjson.Valid(args) {
		return ""
	}
	var parts []string
	gjson.Parse(args).ForEach(func(key, value gjson.Result) bool {
		parts = append(parts, key.String()+": "+value.String())
		return len(parts) < 3
	})
	summary := strings.Join(parts, ", ")
	if len(summary) > 64 {
		summary = summary[:64] + "..."
	}
	return summary
}
