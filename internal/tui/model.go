package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docsum/internal/domain"
	"docsum/internal/textclean"
)

const searchTopK = 10

// DocPort is the TUI-facing subset of the document service.
type DocPort interface {
	Resummarize(doc domain.Document, policy domain.LengthPolicy) (domain.Summary, error)
	SearchHistory(query string, topK int) ([]domain.SearchResult, error)
}

// Item is one summarized document shown by the UI.
type Item struct {
	Document domain.Document
	Summary  domain.Summary
}

type copiedMsg struct{ err error }

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   DocPort
	clipboard domain.Sink
	input     textinput.Model
	viewport  viewport.Model
	items     []Item
	current   int
	policy    domain.LengthPolicy
	results   []domain.SearchResult
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance. clipboard may be nil.
func New(service DocPort, items []Item, policy domain.LengthPolicy, clipboard domain.Sink) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search history and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		service:   service,
		clipboard: clipboard,
		input:     ti,
		viewport:  vp,
		items:     items,
		policy:    policy,
		status:    "tab: length  enter: search  ctrl+y: copy  ctrl+c: quit",
	}
	if len(items) > 1 {
		m.status += "  ctrl+n/ctrl+p: document"
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, stats, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Summary copied to clipboard."
		}
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.cyclePolicy()
			return m, nil
		case "ctrl+y":
			return m, m.copySummary()
		case "ctrl+n", "ctrl+p":
			if len(m.items) > 1 {
				step := 1
				if msg.String() == "ctrl+p" {
					step = len(m.items) - 1
				}
				m.current = (m.current + step) % len(m.items)
				m.results = nil
				m.resummarize()
				return m, nil
			}
		case "esc":
			m.results = nil
			m.input.SetValue("")
			m.refresh()
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.search(q)
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.refresh()
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.refresh()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) cyclePolicy() {
	m.policy = m.policy.Next()
	m.resummarize()
}

func (m *Model) resummarize() {
	if len(m.items) == 0 {
		return
	}
	it := &m.items[m.current]
	if it.Summary.Policy != m.policy {
		s, err := m.service.Resummarize(it.Document, m.policy)
		if err != nil {
			m.status = "Error: " + err.Error()
			m.refresh()
			return
		}
		it.Summary = s
	}
	m.status = fmt.Sprintf("Length: %s", m.policy)
	m.refresh()
}

func (m *Model) search(q string) {
	res, err := m.service.SearchHistory(q, searchTopK)
	switch {
	case err != nil:
		m.status = "Error: " + err.Error()
		m.results = nil
	case len(res) == 0:
		m.status = fmt.Sprintf("No history matches %q", q)
		m.results = nil
	default:
		m.status = fmt.Sprintf("Results for %q (esc: back to summary)", q)
		m.results = res
	}
	m.cursor = 0
	m.lastQuery = q
	m.refresh()
}

func (m Model) copySummary() tea.Cmd {
	if m.clipboard == nil || len(m.items) == 0 {
		return nil
	}
	sink := m.clipboard
	text := m.items[m.current].Summary.Text
	return func() tea.Msg {
		return copiedMsg{err: sink.Write(context.Background(), text)}
	}
}

func (m *Model) refresh() {
	if len(m.results) > 0 {
		m.viewport.SetContent(m.renderCurrentResult())
		return
	}
	m.viewport.SetContent(m.renderSummary())
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.title())
	stats := statsStyle.Render(m.statsLine())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	body := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + stats + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) title() string {
	if len(m.items) == 0 {
		return "docsum"
	}
	t := "docsum  " + m.items[m.current].Document.Source
	if len(m.items) > 1 {
		t += fmt.Sprintf("  (%d/%d)", m.current+1, len(m.items))
	}
	return t
}

func (m Model) statsLine() string {
	if len(m.items) == 0 {
		return ""
	}
	st := m.items[m.current].Summary.Stats
	return fmt.Sprintf("%s  sentences %d  words %d -> %d  ratio %d%%",
		m.policy, st.SourceSentenceCount, st.SourceWordCount, st.SummaryWordCount, st.CompressionRatioPercent)
}

func (m Model) renderSummary() string {
	if len(m.items) == 0 {
		return "No documents."
	}
	return m.items[m.current].Summary.Text
}

func (m Model) renderCurrentResult() string {
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  score=%.3f  %s  %s", m.cursor+1, len(m.results), r.Score,
		r.Entry.Source, r.Entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	body := highlightBestSentence(r.Passage.Text, m.lastQuery)
	return title + "\n\n" + body
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sentenceRe     = regexp.MustCompile(`[^.!?؟]+[.!?؟]*`)
)

func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	var sentences []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 || len(sentences) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore > 0 {
		sentences[bestIdx] = highlightStyle.Render(sentences[bestIdx])
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := textclean.Tokens(s)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	for t := range toTokenSet(sentence) {
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
