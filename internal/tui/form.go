package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	name     string
	labelKey string
	secret   bool
}

type formField struct {
	fieldSpec
	input textinput.Model
}

// form is the textinput side of a page form; the page object owns values and errors.
type form struct {
	fields []formField
	focus  int
}

func newForm(specs ...fieldSpec) form {
	f := form{focus: -1}
	for _, s := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Cursor.SetMode(cursor.CursorStatic)
		if s.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.fields = append(f.fields, formField{fieldSpec: s, input: ti})
	}
	return f
}

func (f *form) focused() bool { return f.focus >= 0 && f.focus < len(f.fields) }

func (f *form) focusAt(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = ((i % len(f.fields)) + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	f.focus = i
	_ = f.fields[i].input.Focus()
}

func (f *form) blur() {
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
	f.focus = -1
}

func (f *form) next() {
	if !f.focused() {
		f.focusAt(0)
		return
	}
	f.focusAt(f.focus + 1)
}

func (f *form) prev() {
	if !f.focused() {
		f.focusAt(len(f.fields) - 1)
		return
	}
	f.focusAt(f.focus - 1)
}

// update feeds msg to the focused input and reports the field whose value changed.
func (f *form) update(msg tea.Msg) (name, value string, changed bool, cmd tea.Cmd) {
	if !f.focused() {
		return "", "", false, nil
	}
	fld := &f.fields[f.focus]
	before := fld.input.Value()
	fld.input, cmd = fld.input.Update(msg)
	after := fld.input.Value()
	return fld.name, after, after != before, cmd
}
