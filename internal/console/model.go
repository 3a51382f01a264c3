package console

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"retailWarehouse/internal/apperr"
	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/logging"
	"retailWarehouse/internal/service"
)

const (
	invalidInput = "Your input is invalid!"
	choicePrompt = "Please make your choice: "
	separator    = "------------------------------------"
)

/* ----------------------------------------
	MESSAGES
---------------------------------------- */

// actionMsg is the result of a command started by a menu action or a form
// check. apply runs on the model once the command returns.
type actionMsg struct {
	apply func(*Model)
	err   error
	done  bool // the action is over and the menu is shown again
}

// eofMsg reports that the input is exhausted.
type eofMsg struct{}

/* ----------------------------------------
	MODEL
---------------------------------------- */

// Model is the console state: the current menu, the session while logged in,
// the form being filled and the input line being typed.
type Model struct {
	ctx      context.Context
	baseCtx  context.Context
	svc      *service.Service
	out      io.Writer
	root     *Menu
	userMenu *Menu
	menu     *Menu
	sess     *auth.Session
	form     *form

	line   []rune
	lastCR bool
	queue  []string
	busy   bool
	eof    bool
	quit   bool
}

func newModel(ctx context.Context, svc *service.Service, out io.Writer) *Model {
	m := &Model{ctx: ctx, baseCtx: ctx, svc: svc, out: out}
	m.root = buildMenuTree(m)
	m.menu = m.root
	return m
}

func (m *Model) Init() tea.Cmd {
	m.showMenu()
	return nil
}

// View is empty: output is written as it happens so the console stays a
// plain line protocol.
func (m *Model) View() string { return "" }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.key(msg)

	case actionMsg:
		m.busy = false
		if msg.err != nil {
			m.report(msg.err)
		} else if msg.apply != nil {
			msg.apply(m)
		}
		if msg.done || msg.err != nil {
			m.form = nil
			if !m.quit {
				m.showMenu()
			}
		} else if m.form != nil {
			if cmd := m.nextField(); cmd != nil {
				m.busy = true
				return m, cmd
			}
		}
		return m, m.drain()

	case eofMsg:
		m.flushLine()
		m.eof = true
		return m, m.drain()
	}
	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	cr := false
	switch msg.Type {
	case tea.KeyEnter:
		cr = true
		m.endLine()
	case tea.KeyCtrlJ:
		if !m.lastCR {
			m.endLine()
		}
	case tea.KeyRunes:
		m.line = append(m.line, msg.Runes...)
	case tea.KeySpace:
		m.line = append(m.line, ' ')
	case tea.KeyTab:
		m.line = append(m.line, '\t')
	case tea.KeyBackspace:
		if len(m.line) > 0 {
			m.line = m.line[:len(m.line)-1]
		}
	case tea.KeyCtrlD:
		m.flushLine()
		m.eof = true
	case tea.KeyCtrlC:
		m.quit = true
		return tea.Quit
	}
	m.lastCR = cr
	return m.drain()
}

func (m *Model) endLine() {
	m.queue = append(m.queue, string(m.line))
	m.line = m.line[:0]
}

// flushLine queues a final line that was not terminated.
func (m *Model) flushLine() {
	if len(m.line) > 0 {
		m.endLine()
	}
}

// drain handles queued lines one at a time. Lines typed while a command is
// running wait until its result has been applied.
func (m *Model) drain() tea.Cmd {
	for !m.busy && !m.quit && len(m.queue) > 0 {
		line := m.queue[0]
		m.queue = m.queue[1:]
		if cmd := m.handleLine(line); cmd != nil {
			m.busy = true
			return cmd
		}
	}
	if m.quit || (!m.busy && m.eof && len(m.queue) == 0) {
		m.quit = true
		return tea.Quit
	}
	return nil
}

func (m *Model) handleLine(line string) tea.Cmd {
	if m.form != nil {
		return m.answer(line)
	}
	v, err := parseField(intField, line)
	if err != nil {
		fmt.Fprintln(m.out, invalidInput)
		fmt.Fprint(m.out, choicePrompt)
		return nil
	}
	item, ok := m.lookup(v.(int))
	if !ok {
		fmt.Fprintln(m.out, "Unrecognized choice!")
		m.showMenu()
		return nil
	}
	if item.Submenu != nil {
		m.leaveSession(item.Submenu)
		return nil
	}
	if m.sess != nil {
		if err := m.svc.CheckSession(m.sess); err != nil {
			m.report(err)
			m.leaveSession(m.root)
			return nil
		}
	}
	return item.Action()
}

func (m *Model) enterSession(sess *auth.Session) {
	m.sess = sess
	m.ctx = logging.WithAttrs(m.baseCtx, "session_id", sess.ID, "user_id", sess.UserID, "role", string(sess.Role))
	m.menu = m.userMenu
	logging.FromContext(m.ctx).Info("logged in")
}

func (m *Model) leaveSession(to *Menu) {
	if m.sess != nil {
		logging.FromContext(m.ctx).Info("logged out")
	}
	m.sess = nil
	m.ctx = m.baseCtx
	m.menu = to
	m.showMenu()
}

// report prints the user-facing message for err and logs its cause.
func (m *Model) report(err error) {
	log := logging.FromContext(m.ctx)
	if apperr.Is(err, apperr.KindPersistence) || apperr.KindOf(err) == apperr.KindUnknown {
		log.Error("action failed", "error", err)
	} else {
		log.Warn("action rejected", "kind", apperr.KindOf(err).String(), "error", err)
	}
	fmt.Fprintln(m.out, apperr.UserMessage(err))
}
