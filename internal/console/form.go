package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"retailWarehouse/internal/apperr"
)

type fieldKind int

const (
	textField fieldKind = iota
	intField
	idField
	floatField
)

// field is one answer collected by a form.
type field struct {
	name   string
	prompt string
	kind   fieldKind
	// retry returns a replacement prompt when the parsed value must be asked again.
	retry func(f *form, v any) (string, bool)
	// check runs once the value is stored; an error ends the form.
	check func(ctx context.Context, f *form) error
}

// form walks the fields of one action, then submits the answers.
type form struct {
	fields []field
	i      int
	prompt string
	values map[string]any
	submit func(ctx context.Context, f *form) (func(*Model), error)
}

func newForm(submit func(ctx context.Context, f *form) (func(*Model), error), fields ...field) *form {
	return &form{fields: fields, values: map[string]any{}, submit: submit}
}

func (f *form) text(name string) string {
	s, _ := f.values[name].(string)
	return s
}

func (f *form) integer(name string) int {
	n, _ := f.values[name].(int)
	return n
}

func (f *form) id(name string) int64 {
	n, _ := f.values[name].(int64)
	return n
}

func (f *form) decimal(name string) float64 {
	x, _ := f.values[name].(float64)
	return x
}

func parseField(kind fieldKind, line string) (any, error) {
	s := strings.TrimSpace(line)
	var (
		v   any
		err error
	)
	switch kind {
	case intField:
		v, err = strconv.Atoi(s)
	case idField:
		v, err = strconv.ParseInt(s, 10, 64)
	case floatField:
		v, err = strconv.ParseFloat(s, 64)
	default:
		return line, nil
	}
	if err != nil {
		return nil, apperr.Parse("read input", "number", s, err)
	}
	return v, nil
}

// startForm prints the first prompt, or submits right away when the form
// has no fields.
func (m *Model) startForm(f *form) tea.Cmd {
	m.form = f
	return m.nextField()
}

func (m *Model) nextField() tea.Cmd {
	f := m.form
	if f.i < len(f.fields) {
		f.prompt = f.fields[f.i].prompt
		fmt.Fprint(m.out, f.prompt)
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		apply, err := f.submit(ctx, f)
		return actionMsg{apply: apply, err: err, done: true}
	}
}

// answer feeds one input line to the current field.
func (m *Model) answer(line string) tea.Cmd {
	f := m.form
	fd := f.fields[f.i]
	v, err := parseField(fd.kind, line)
	if err != nil {
		fmt.Fprintln(m.out, invalidInput)
		fmt.Fprint(m.out, f.prompt)
		return nil
	}
	if fd.retry != nil {
		if prompt, again := fd.retry(f, v); again {
			f.prompt = prompt
			fmt.Fprint(m.out, f.prompt)
			return nil
		}
	}
	f.values[fd.name] = v
	f.i++
	if fd.check == nil {
		return m.nextField()
	}
	ctx := m.ctx
	return func() tea.Msg {
		if err := fd.check(ctx, f); err != nil {
			return actionMsg{err: err, done: true}
		}
		return actionMsg{}
	}
}
