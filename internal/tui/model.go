package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/trumpswap/internal/deck"
	"github.com/lox/trumpswap/internal/game"
	"github.com/lox/trumpswap/internal/server"
)

// Model is the bubbletea model for the terminal client. All game state
// arrives as server snapshots; the model never simulates rules locally.
type Model struct {
	client *Client
	logger *log.Logger
	name   string

	logViewport viewport.Model
	input       textinput.Model

	seatID   string
	snapshot game.Snapshot
	status   string
	quitting bool

	width       int
	height      int
	initialized bool
}

// NewModel creates the client model; it joins as name once connected
func NewModel(client *Client, name string, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "check | call | bet 10 | raise 10 | fold | swap <hand> <community> | play AS | start | bots 2"
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 80
	ti.Prompt = "> "

	return &Model{
		client:      client,
		logger:      logger.WithPrefix("tui"),
		name:        name,
		logViewport: vp,
		input:       ti,
	}
}

// Init joins the table and starts listening for server messages
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.join(), m.listen())
}

func (m *Model) join() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Join(m.name); err != nil {
			return DisconnectedMsg{Err: err}
		}
		return nil
	}
}

// listen waits for the next server message
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.client.Incoming()
		if !ok {
			return DisconnectedMsg{}
		}
		return msg
	}
}

// Update handles terminal and server events
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = max(5, msg.Height-18)
		m.initialized = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			_ = m.client.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if cmd := m.handleCommand(line); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case JoinedMsg:
		m.seatID = msg.SeatID
		m.status = fmt.Sprintf("Seated as %s", msg.Name)
		cmds = append(cmds, m.listen())

	case StateMsg:
		m.snapshot = msg.Snapshot
		m.logViewport.SetContent(strings.Join(m.snapshot.Log, "\n"))
		m.logViewport.GotoBottom()
		cmds = append(cmds, m.listen())

	case ServerErrorMsg:
		m.status = ErrorStyle.Render(fmt.Sprintf("%s: %s", msg.Code, msg.Message))
		cmds = append(cmds, m.listen())

	case DisconnectedMsg:
		m.quitting = true
		m.status = "Disconnected"
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleCommand parses one input line into a client request
func (m *Model) handleCommand(line string) tea.Cmd {
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])

	var err error
	switch verb {
	case "quit", "exit":
		m.quitting = true
		_ = m.client.Close()
		return tea.Quit

	case "start":
		err = m.client.StartHand()

	case "reset":
		err = m.client.Reset()

	case "bots", "bot":
		count := 1
		if len(fields) > 1 {
			count, err = strconv.Atoi(fields[1])
			if err != nil {
				m.status = ErrorStyle.Render("usage: bots <count>")
				return nil
			}
		}
		err = m.client.AddBots(count)

	case "fold", "check", "call":
		err = m.client.Act(server.ActionData{Action: verb})

	case "bet", "raise":
		if len(fields) < 2 {
			m.status = ErrorStyle.Render(fmt.Sprintf("usage: %s <amount>", verb))
			return nil
		}
		amount, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			m.status = ErrorStyle.Render(fmt.Sprintf("usage: %s <amount>", verb))
			return nil
		}
		err = m.client.Act(server.ActionData{Action: verb, Amount: amount})

	case "swap":
		if len(fields) < 3 {
			m.status = ErrorStyle.Render("usage: swap <hand index> <community index>")
			return nil
		}
		handIdx, err1 := strconv.Atoi(fields[1])
		commIdx, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			m.status = ErrorStyle.Render("usage: swap <hand index> <community index>")
			return nil
		}
		err = m.client.Act(server.ActionData{Action: "swap", HandIndex: handIdx, CommunityIndex: commIdx})

	case "play":
		if len(fields) < 2 {
			m.status = ErrorStyle.Render("usage: play <card, e.g. AS>")
			return nil
		}
		err = m.client.Act(server.ActionData{Action: "playCard", Card: strings.ToUpper(fields[1])})

	default:
		m.status = ErrorStyle.Render(fmt.Sprintf("unknown command %q", verb))
		return nil
	}

	if err != nil {
		m.status = ErrorStyle.Render(err.Error())
	} else {
		m.status = ""
	}
	return nil
}

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.initialized {
		return "Connecting..."
	}

	var b strings.Builder
	snap := m.snapshot

	header := fmt.Sprintf(" Trump Swap — hand %d — %s ", snap.HandNumber, snap.Phase)
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot %d", snap.Pot)))
	if snap.CurrentBet > 0 {
		b.WriteString(PotStyle.Render(fmt.Sprintf("  Bet %d", snap.CurrentBet)))
	}
	if snap.Trump != nil {
		b.WriteString("  " + TrumpStyle.Render(fmt.Sprintf("Trump %s", *snap.Trump)))
	}
	b.WriteString("\n")

	b.WriteString("Community: " + renderCards(snap.Community, true) + "\n")
	if snap.Trick != nil {
		b.WriteString(renderTrick(snap))
	}
	b.WriteString("\n")

	for _, seat := range snap.Seats {
		b.WriteString(renderSeat(seat) + "\n")
	}
	b.WriteString("\n")

	if me := snap.Viewer(); me != nil && len(me.Hand) > 0 {
		b.WriteString("Your hand: " + renderCards(me.Hand, true) + "\n\n")
	}

	b.WriteString(LogStyle.Render(m.logViewport.View()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n" + HelpStyle.Render("esc to quit"))

	return b.String()
}

func renderSeat(seat game.SeatView) string {
	marker := "  "
	if seat.Turn {
		marker = TurnStyle.Render("► ")
	} else if seat.Dealer {
		marker = "D "
	}

	line := fmt.Sprintf("%s%-12s %5d chips", marker, seat.Name, seat.Stack)
	if seat.InHand {
		line += fmt.Sprintf("  cards %d  tricks %d", seat.HandCount, seat.TricksWon)
		if seat.RoundBet > 0 {
			line += fmt.Sprintf("  in %d", seat.RoundBet)
		}
		if seat.HasSwapped {
			line += "  swapped"
		}
	}
	if !seat.Connected {
		line += "  (gone)"
	}

	switch {
	case seat.Folded:
		return FoldedStyle.Render(line)
	case seat.Turn:
		return TurnStyle.Render(line)
	default:
		return SeatStyle.Render(line)
	}
}

func renderTrick(snap game.Snapshot) string {
	var parts []string
	for _, play := range snap.Trick.Plays {
		name := play.SeatID
		for _, seat := range snap.Seats {
			if seat.ID == play.SeatID {
				name = seat.Name
			}
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, renderCard(play.Card)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Trick %d: waiting for the lead\n", snap.Trick.Number)
	}
	return fmt.Sprintf("Trick %d: %s\n", snap.Trick.Number, strings.Join(parts, "  "))
}

func renderCards(cards []deck.Card, indexed bool) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if indexed {
			parts[i] = fmt.Sprintf("[%d]%s", i, renderCard(c))
		} else {
			parts[i] = renderCard(c)
		}
	}
	return strings.Join(parts, " ")
}

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// Run starts the terminal client and blocks until it exits
func Run(client *Client, name string, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(client, name, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
