// Package console is the interactive front end: a bubbletea program over a
// plain numbered-line protocol.
package console

import (
	"context"
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"retailWarehouse/internal/service"
)

// Router runs the menu program over the given input and output.
type Router struct {
	svc *service.Service
	in  io.Reader
	out io.Writer
}

func NewRouter(svc *service.Service, in io.Reader, out io.Writer) *Router {
	return &Router{svc: svc, in: in, out: out}
}

// Run serves the menus until the user exits or the input ends.
func (r *Router) Run(ctx context.Context) error {
	m := newModel(ctx, r.svc, r.out)
	var p *tea.Program
	in := &eofReader{r: r.in, onEOF: func() { p.Send(eofMsg{}) }}
	p = tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(r.out),
		tea.WithoutRenderer(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// eofReader tells the program when its input is exhausted; bubbletea stops
// reading silently at EOF.
type eofReader struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
}

func (e *eofReader) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) && n == 0 {
		e.once.Do(e.onEOF)
	}
	return n, err
}
