package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sitechat/internal/domain"
	"sitechat/internal/service"
	"sitechat/internal/session"
)

// Controller is the TUI-facing subset of the service.
type Controller interface {
	IndexWebsite(ctx context.Context, url string) (service.IndexResult, error)
	Ask(ctx context.Context, collection, question string, history []domain.Turn) string
	Clear(ctx context.Context) error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service  Controller
	sess     *session.Session
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates a new TUI model around the service and session.
func New(svc Controller, sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter a website URL to index"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := "Paste a URL and press Enter to index it."
	if sess.Indexed() {
		ti.Placeholder = "Ask a question about the website"
		status = fmt.Sprintf("Chatting about %s.", sess.SiteURL())
	}
	return Model{service: svc, sess: sess, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + site line, spacer, input frame, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				break
			}
			m.input.SetValue("")
			m = m.submit(line)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit routes one input line: commands, a URL before any site is
// indexed, or a question afterwards. Everything runs synchronously;
// one action completes before the next is accepted.
func (m Model) submit(line string) Model {
	ctx := context.Background()
	switch {
	case line == ":reset":
		m.sess.Reset()
		m.status = "Conversation cleared."
	case line == ":clear":
		if err := m.service.Clear(ctx); err != nil {
			m.status = "Error: " + err.Error()
			return m
		}
		m.sess.Reset()
		m.sess.SetSite("", "", "")
		m.input.Placeholder = "Enter a website URL to index"
		m.status = "All indexed collections removed."
	case strings.HasPrefix(line, ":index "):
		m = m.indexSite(ctx, strings.TrimSpace(strings.TrimPrefix(line, ":index ")))
	case !m.sess.Indexed():
		m = m.indexSite(ctx, line)
	default:
		history := m.sess.Turns()
		m.sess.Append(domain.RoleUser, line)
		answer := m.service.Ask(ctx, m.sess.Collection(), line, history)
		m.sess.Append(domain.RoleAssistant, answer)
		m.status = fmt.Sprintf("%d turns. :index <url> to switch site, :reset to clear chat.", len(m.sess.Turns()))
	}
	return m
}

func (m Model) indexSite(ctx context.Context, url string) Model {
	m.status = "Crawling and indexing " + url + "..."
	res, err := m.service.IndexWebsite(ctx, url)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.sess.SetSite(res.Collection, res.URL, res.Title)
	m.input.Placeholder = "Ask a question about the website"
	m.status = fmt.Sprintf("Indexed %q: %d chunks. Ask away.", res.Title, res.Chunks)
	if res.Summary != "" {
		m.sess.Append(domain.RoleAssistant, "Summary: "+res.Summary)
	}
	return m
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("sitechat")
	site := "No site indexed yet."
	if m.sess.Indexed() {
		site = fmt.Sprintf("Source: %s | Title: %s", m.sess.SiteURL(), m.sess.SiteTitle())
	}
	siteLine := siteStyle.Render(site)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + siteLine + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	turns := m.sess.Turns()
	if len(turns) == 0 {
		return "No conversation yet."
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := userLabelStyle.Render("you")
		if turn.Role == domain.RoleAssistant {
			label = assistantLabelStyle.Render("site")
		}
		b.WriteString(label + " " + turn.Content)
	}
	return b.String()
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true)
	siteStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
