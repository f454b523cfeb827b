package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/internal/infra/apiclient"
)

type model struct {
	styles  styles
	client  *apiclient.Client
	session *collector.Session

	viewport  viewport.Model
	textarea  textarea.Model
	spinner   spinner.Model
	isLoading bool
	ready     bool
	width     int

	history []string
	apps    []catalog.App
	status  string
}

func initialModel(theme ThemeName, client *apiclient.Client, session *collector.Session) *model {
	styles := GetTheme(theme)
	ta := textarea.New()
	ta.Placeholder = "キーワードまたは /help"
	ta.Focus()
	ta.Prompt = styles.prompt.Render("► ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))

	return &model{
		styles:   styles,
		client:   client,
		session:  session,
		textarea: ta,
		spinner:  sp,
		history:  []string{styles.header.Render("App Store レビュー分析"), "", "/help でコマンド一覧を表示します。"},
	}
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	if m.isLoading {
		m.spinner, spCmd = m.spinner.Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m, m.processCommand(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		footerHeight := 4
		headerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight - headerHeight
		}
		m.textarea.SetWidth(msg.Width - 4)
		m.refresh()

	case searchDoneMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendError(msg.err)
			break
		}
		m.apps = msg.apps
		if len(msg.apps) == 0 {
			m.status = msgNoResults
		} else {
			m.status = fmt.Sprintf(msgFoundApps, len(msg.apps))
		}
		m.appendLines("", m.styles.command.Render("検索: "+msg.term), renderApps(m.styles, m.apps, m.session.IsSelected))

	case suggestDoneMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendError(msg.err)
			break
		}
		terms := make([]string, 0, len(msg.terms))
		for _, t := range msg.terms {
			terms = append(terms, t.Term)
		}
		if len(terms) == 0 {
			m.appendLines("", m.styles.inactive.Render("候補はありません"))
			break
		}
		m.appendLines("", m.styles.command.Render("候補: ")+strings.Join(terms, " / "))

	case roundDoneMsg:
		m.isLoading = false
		for _, n := range m.session.TakeNotices() {
			m.appendLines(m.styles.inactive.Render(n))
		}
		if msg.err != nil {
			m.appendError(msg.err)
		}
		if msg.round.Committed {
			m.showRound(msg.round)
		}

	case analysisDoneMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendError(msg.err)
			break
		}
		m.appendLines("", renderMarkdown(analysisMarkdown(msg.result), m.width-4))
		m.status = "分析が完了しました"

	case historyLoadedMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendError(msg.err)
			break
		}
		m.appendLines("", m.styles.command.Render("分析履歴"), renderHistory(m.styles, msg.records))
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m *model) showRound(r collector.Round) {
	reviews := m.session.Reviews()
	_, hasMore := m.session.Cursor()
	m.appendLines("", m.styles.command.Render(fmt.Sprintf("ページ %d: %d件の低評価レビュー (合計 %d件)", r.Page, r.Fetched, len(reviews))))
	if r.Fetched > 0 {
		m.appendLines(renderReviews(m.styles, reviews[len(reviews)-r.Fetched:]))
	}
	if hasMore {
		m.status = "/more で次のページを取得できます"
	} else {
		m.status = "すべてのレビューを取得しました"
	}
}

func (m *model) processCommand(input string) tea.Cmd {
	if !strings.HasPrefix(input, "/") {
		return m.startSearch(input)
	}
	parts := strings.Fields(input)
	cmd, args := parts[0], parts[1:]
	m.appendLines("", m.styles.command.Render("→ "+input))

	switch cmd {
	case "/exit", "/quit":
		return tea.Quit
	case "/help":
		m.appendLines(helpText)
	case "/search":
		if len(args) == 0 {
			m.appendError(errors.New("使い方: /search <キーワード>"))
			return nil
		}
		return m.startSearch(strings.Join(args, " "))
	case "/suggest":
		if len(args) == 0 {
			m.appendError(errors.New("使い方: /suggest <キーワード>"))
			return nil
		}
		return m.startLoading(suggestCmd(m.client, m.session, strings.Join(args, " ")))
	case "/select":
		m.toggle(args)
	case "/selected":
		m.showSelected()
	case "/clear":
		m.session.ClearSelection()
		m.session.Reset()
		m.status = "選択をクリアしました"
	case "/country":
		m.setCountry(args)
	case "/lang":
		m.setLanguage(args)
	case "/reviews":
		if len(m.session.Selected()) == 0 {
			m.appendError(collector.ErrNoSelection)
			return nil
		}
		return m.startLoading(fetchCmd(m.session, false))
	case "/more":
		if _, more := m.session.Cursor(); !more {
			m.appendLines(m.styles.inactive.Render("これ以上のレビューはありません"))
			return nil
		}
		return m.startLoading(fetchCmd(m.session, true))
	case "/analyze":
		if len(m.session.Reviews()) == 0 {
			m.appendError(collector.ErrNothingToAnalyze)
			return nil
		}
		m.status = "分析中..."
		return m.startLoading(analyzeCmd(m.session))
	case "/history":
		return m.startLoading(historyCmd(m.client))
	default:
		m.appendError(fmt.Errorf("不明なコマンドです: %s", cmd))
	}
	return nil
}

// startSearch begins a new session: the old selection, reviews and
// analysis belong to the previous result list.
func (m *model) startSearch(term string) tea.Cmd {
	m.session.ClearSelection()
	m.session.Reset()
	m.apps = nil
	m.status = ""
	return m.startLoading(searchCmd(m.client, m.session, term))
}

func (m *model) startLoading(cmd tea.Cmd) tea.Cmd {
	m.isLoading = true
	m.refresh()
	return tea.Batch(m.spinner.Tick, cmd)
}

// toggle flips selection for 1-based indexes into the last search result.
func (m *model) toggle(args []string) {
	if len(m.apps) == 0 {
		m.appendError(errors.New("先にアプリを検索してください"))
		return
	}
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 || n > len(m.apps) {
			m.appendError(fmt.Errorf("無効な番号: %s", a))
			continue
		}
		m.session.Toggle(m.apps[n-1])
	}
	m.appendLines(renderApps(m.styles, m.apps, m.session.IsSelected))
	m.status = fmt.Sprintf("%d件のアプリを選択中", len(m.session.Selected()))
}

func (m *model) showSelected() {
	sel := m.session.Selected()
	if len(sel) == 0 {
		m.appendLines(m.styles.inactive.Render(msgNoSelection))
		return
	}
	names := make([]string, 0, len(sel))
	for _, app := range sel {
		names = append(names, "• "+app.Title)
	}
	m.appendLines(strings.Join(names, "\n"))
}

func (m *model) setCountry(args []string) {
	if len(args) != 1 {
		m.appendError(errors.New("使い方: /country <コード>"))
		return
	}
	c, ok := locale.ParseCountry(strings.ToUpper(args[0]))
	if !ok {
		m.appendError(fmt.Errorf("無効な国コード: %s", args[0]))
		return
	}
	_, lang := m.session.Locale()
	m.session.SetLocale(c, lang)
	m.status = "国: " + c.Label()
}

func (m *model) setLanguage(args []string) {
	if len(args) != 1 {
		m.appendError(errors.New("使い方: /lang <コード>"))
		return
	}
	lang := locale.Language(strings.ToLower(args[0]))
	country, _ := m.session.Locale()
	m.session.SetLocale(country, lang)
	m.status = "言語: " + lang.Label()
}

func (m *model) appendLines(lines ...string) {
	m.history = append(m.history, lines...)
	m.refresh()
}

func (m *model) appendError(err error) {
	m.appendLines(m.styles.error.Render("⚠ " + err.Error()))
}

func (m *model) refresh() {
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) statusLine() string {
	country, lang := m.session.Locale()
	parts := []string{fmt.Sprintf("%s / %s", country, lang)}
	if n := len(m.session.Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("選択 %d", n))
	}
	if n := len(m.session.Reviews()); n > 0 {
		parts = append(parts, fmt.Sprintf("レビュー %d", n))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.styles.inactive.Render(strings.Join(parts, " · "))
}

func (m *model) View() string {
	if !m.ready {
		return "\n  初期化中..."
	}
	var footer string
	if m.isLoading {
		footer = m.spinner.View() + " 処理中..."
	} else {
		footer = m.textarea.View()
	}
	return m.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.viewport.Render(m.viewport.View()),
		m.styles.footer.Render(lipgloss.JoinVertical(lipgloss.Left, m.statusLine(), footer)),
	))
}
