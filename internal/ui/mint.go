package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mohsinsiddi/devmint/internal/mint"
	tea "github.com/charmbracelet/bubbletea"
)

// StateMsg carries a new store state into the mint page.
type StateMsg mint.State

// ActionDoneMsg reports that a dispatched action finished.
type ActionDoneMsg struct {
	Action mint.Action
	Err    error
}

// MintModel is the live mint page. It renders whatever the store last
// published and hands button presses to Do.
type MintModel struct {
	Network  string
	Contract string
	// Do runs an action off the UI goroutine and reports back with an
	// ActionDoneMsg.
	Do func(mint.Action) tea.Cmd

	state    mint.State
	frame    int
	seen     string // notice already dismissed by the user
	Quitting bool
}

// NewMintModel creates the page in the disconnected state.
func NewMintModel(network, contract string, do func(mint.Action) tea.Cmd) MintModel {
	return MintModel{
		Network:  network,
		Contract: contract,
		Do:       do,
		state:    mint.State{UI: mint.Disconnected},
	}
}

type mintTickMsg struct{}

func mintSpinTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg { return mintTickMsg{} })
}

func (m MintModel) Init() tea.Cmd { return mintSpinTick() }

// State returns the state the page is showing.
func (m MintModel) State() mint.State { return m.state }

func (m MintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit
		case "enter", " ", "space":
			p := mint.Render(m.state.UI)
			if !p.HasButton() || m.Do == nil {
				return m, nil
			}
			return m, m.Do(p.Action)
		case "x":
			m.seen = m.state.Notice
		}

	case StateMsg:
		m.state = mint.State(msg)

	case ActionDoneMsg:
		// Failures are logged by the dispatcher; the page just follows
		// the store.

	case mintTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, mintSpinTick()
	}
	return m, nil
}

func (m MintModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Banner() + "\n")
	sb.WriteString(StyleTitle.Render("Welcome to Crypto Devs!") + "\n")
	sb.WriteString("It's an NFT collection for developers in Crypto.\n")
	sb.WriteString(m.mintedLine() + "\n\n")

	if m.state.Alert != "" {
		sb.WriteString(StyleAlert.Render(m.state.Alert) + "\n\n")
	}

	p := mint.Render(m.state.UI)
	if p.Message != "" {
		sb.WriteString(p.Message + "\n\n")
	}
	switch {
	case m.state.UI == mint.Loading:
		sb.WriteString(StyleButtonIdle.Render(spinnerFrames[m.frame]+" "+p.Label) + "\n")
	case p.HasButton():
		sb.WriteString(StyleButton.Render(p.Label) + "\n")
	}

	if n := m.state.Notice; n != "" && n != m.seen {
		sb.WriteString("\n" + Success(n) + StyleMeta.Render("  [ x ] dismiss") + "\n")
	}

	sb.WriteString("\n" + m.footer() + "\n")
	return sb.String()
}

func (m MintModel) mintedLine() string {
	supply := m.state.Snapshot.MaxTokenIDs
	if supply == 0 {
		supply = 20
	}
	return fmt.Sprintf("%s/%d have been minted", Val(fmt.Sprint(m.state.Snapshot.TokenIDsMinted)), supply)
}

func (m MintModel) footer() string {
	var parts []string
	if s := m.state.Session; s != nil {
		who := TruncateAddr(s.Address.Hex())
		if s.ReadOnly {
			who += " (watch-only)"
		}
		parts = append(parts, Addr(who))
	}
	if m.Network != "" {
		parts = append(parts, ChainName(m.Network))
	}
	if m.Contract != "" {
		parts = append(parts, Meta("contract "+TruncateAddr(m.Contract)))
	}

	keys := StyleMeta.Render("[ enter ] ") + StyleInfo.Render("action") +
		StyleMeta.Render("   [ q ] quit")
	if len(parts) == 0 {
		return keys
	}
	return strings.Join(parts, StyleMeta.Render("  ·  ")) + "\n" + keys
}
