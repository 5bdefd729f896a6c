package tui

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/knockbot/knockbot/internal/domain"
)

type variantItem struct {
	name   string
	weight int
}

func (v variantItem) Title() string {
	if v.name == "" {
		return "Any"
	}
	return v.name
}

func (v variantItem) Description() string {
	if v.name == "" {
		return "Weighted draw across all variants"
	}
	return fmt.Sprintf("weight %d", v.weight)
}

func (v variantItem) FilterValue() string { return v.name }

type model struct {
	theme Theme
	deps  Deps

	variants list.Model
	spin     spinner.Model
	width    int

	busy   bool
	dryRun bool

	hasJoke bool
	seed    uint64
	variant string
	joke    domain.Joke

	permalink string
	toast     string
}

func Run(deps Deps) error {
	m := wrapSafe(newModel(deps), deps.Logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.NextSeed == nil {
		deps.NextSeed = rand.Uint64
	}
	t := DefaultTheme()

	items := []list.Item{variantItem{}}
	for _, v := range deps.Config.Variants {
		items = append(items, variantItem{name: v.Name, weight: v.Weight})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Variant"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		theme:    t,
		deps:     deps,
		variants: l,
		spin:     sp,
		dryRun:   deps.DryRun,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) selectedVariant() string {
	it, ok := m.variants.SelectedItem().(variantItem)
	if !ok {
		return ""
	}
	return it.name
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.variants.SetSize(max(msg.Width/3, 20), max(msg.Height-10, 5))
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case jokeComposedMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.hasJoke = true
		m.seed = msg.seed
		m.variant = msg.variant
		m.joke = msg.joke
		m.permalink = ""
		m.toast = ""
		return m, nil

	case jokePostedMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		if msg.dryRun {
			m.toast = "Test mode, not posted"
			return m, nil
		}
		m.permalink = msg.res.Publish.Permalink
		m.toast = "Posted"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter", "n":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.toast = ""
			return m, tea.Batch(m.spin.Tick, cmdCompose(m.deps, m.deps.NextSeed(), m.selectedVariant()))

		case "p":
			if m.busy {
				return m, nil
			}
			if !m.hasJoke {
				m.toast = "Compose a joke first (n)"
				return m, nil
			}
			m.busy = true
			m.toast = ""
			return m, tea.Batch(m.spin.Tick, cmdPost(m.deps, m.seed, m.variant, m.dryRun))

		case "t":
			m.dryRun = !m.dryRun
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.variants, cmd = m.variants.Update(msg)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("knockbot") + "\n" +
		m.theme.Subtitle.Render("Knock-knock jokes from random names") + "\n"

	mode := "live"
	if m.dryRun {
		mode = "test mode"
	}

	var body string
	switch {
	case m.busy:
		body = m.spin.View() + " working..."
	case m.hasJoke:
		body = m.theme.Joke.Render(m.joke.Text) + "\n\n" +
			m.theme.Help.Render(fmt.Sprintf("variant=%s seed=%d", m.joke.Variant, m.seed))
		if m.permalink != "" {
			body += "\n" + m.permalink
		}
	default:
		body = m.theme.Help.Render("No joke yet. Press n to compose one.")
	}

	width := m.width - 8
	if width < 20 {
		width = 60
	}

	status := m.theme.Help.Render("Mode: " + mode)
	if m.deps.Debug && m.deps.LogPath != "" {
		status += m.theme.Help.Render(" • Log: " + m.deps.LogPath)
	}
	if m.toast != "" {
		status += "\n" + m.theme.Toast.Render(clampString(m.toast, width))
	}

	help := m.theme.Help.Render("↑/↓ variant • n new joke • p post • t toggle test mode • q quit")
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Card.Render(m.variants.View()),
		m.theme.Card.Render(body),
	)
	return wrap.Render(header + "\n" + panes + "\n" + status + "\n" + help)
}
