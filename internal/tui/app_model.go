package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"userdir-cli/internal/api"
	"userdir-cli/internal/app"
	"userdir-cli/internal/directory"
	"userdir-cli/internal/locale"
	"userdir-cli/internal/pages"
	"userdir-cli/internal/route"
)

type appModel struct {
	app  *app.App
	ctx  context.Context
	keys keyMap

	width  int
	height int

	change route.Change
	gen    uint64

	login      *pages.LoginForm
	signup     *pages.SignUpForm
	activation *pages.Activation
	profile    *pages.Profile
	dir        *directory.Fetcher
	users      list.Model
	form       form

	prompting bool
	prompt    textinput.Model

	status  string
	initCmd tea.Cmd
}

func newAppModel(ctx context.Context, a *app.App, start string) appModel {
	m := appModel{
		app:   a,
		ctx:   ctx,
		keys:  defaultKeyMap(),
		users: newUserList(),
		form:  form{focus: -1},
	}
	m.prompt = textinput.New()
	m.prompt.Prompt = "go to: "
	m.prompt.Cursor.SetMode(cursor.CursorStatic)

	if start == "" {
		start = "/"
	}
	m.initCmd = m.enter(a.Router.Start(start))
	return m
}

func (m appModel) Init() tea.Cmd { return m.initCmd }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	// Any trigger (link, prompt, history, login redirect) shows up as a new generation.
	if next.app.Router.Generation() != next.gen {
		cmd = tea.Batch(cmd, next.enter(next.app.Router.Current()))
	}
	return next, cmd
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case pageMsg:
		if msg.gen != m.gen || m.dir == nil {
			return m, nil
		}
		m.refreshUsers()
		if msg.err != nil && !errors.Is(msg.err, directory.ErrUnmounted) {
			m.app.Log.Warnw("list users failed", "err", msg.err)
		}
		return m, nil

	case activationMsg, profileMsg:
		// The page object already holds the result; a re-render is all that is needed.
		return m, nil

	case submitMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.signup != nil && m.signup.Done() {
			m.form.blur()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.prompting {
		switch msg.String() {
		case "esc":
			m.prompting = false
			m.prompt.Blur()
		case "enter":
			path := strings.TrimSpace(m.prompt.Value())
			m.prompting = false
			m.prompt.Blur()
			if path != "" {
				m.app.Router.Navigate(path)
			}
		default:
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.form.focused() {
		switch {
		case key.Matches(msg, m.keys.Leave):
			m.form.blur()
			return m, nil
		case key.Matches(msg, m.keys.NextField):
			m.form.next()
			return m, nil
		case key.Matches(msg, m.keys.PrevField):
			m.form.prev()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			return m, m.submit()
		}
		name, value, changed, cmd := m.form.update(msg)
		if changed {
			m.setField(name, value)
		}
		return m, cmd
	}

	links := m.app.Nav.Links()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.GoTo):
		m.prompting = true
		m.prompt.SetValue("")
		_ = m.prompt.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.app.Router.Back()
		return m, nil
	case key.Matches(msg, m.keys.Forward):
		m.app.Router.Forward()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.follow("/")
		return m, nil
	case key.Matches(msg, m.keys.Users):
		m.follow("/users")
		return m, nil
	case key.Matches(msg, m.keys.Login):
		if links.ShowLogin {
			m.follow("/login")
		}
		return m, nil
	case key.Matches(msg, m.keys.SignUp):
		if links.ShowSignUp {
			m.follow("/signup")
		}
		return m, nil
	case key.Matches(msg, m.keys.Profile):
		if links.ShowProfileLink && links.ProfileHref != nil {
			m.follow(*links.ProfileHref)
		}
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		if links.ShowProfileLink {
			if err := m.app.Logout(); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Locale):
		if _, err := m.app.Locale.Toggle(); err != nil {
			m.status = err.Error()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		return m, m.turnPage(1)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.turnPage(-1)
	}

	if m.onForm() {
		switch {
		case key.Matches(msg, m.keys.NextField):
			m.form.next()
			return m, nil
		case key.Matches(msg, m.keys.PrevField):
			m.form.prev()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			return m, m.submit()
		}
		return m, nil
	}

	if m.dir != nil {
		if key.Matches(msg, m.keys.Enter) {
			if it, ok := m.users.SelectedItem().(userItem); ok {
				m.follow(route.UserPath(it.user.ID))
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.users, cmd = m.users.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) follow(href string) {
	m.app.Router.Click(&linkEvent{href: href})
}

func (m appModel) onForm() bool {
	return m.login != nil || (m.signup != nil && !m.signup.Done())
}

func (m *appModel) setField(name, value string) {
	switch {
	case m.login != nil:
		m.login.SetField(name, value)
	case m.signup != nil:
		m.signup.SetField(name, value)
	}
}

func (m *appModel) submit() tea.Cmd {
	ctx, gen := m.ctx, m.gen
	switch {
	case m.login != nil:
		f := m.login
		if !f.CanSubmit() {
			return nil
		}
		return func() tea.Msg {
			sent, err := f.Submit(ctx)
			return submitMsg{gen: gen, sent: sent, err: err}
		}
	case m.signup != nil:
		f := m.signup
		if !f.CanSubmit() {
			return nil
		}
		return func() tea.Msg {
			sent, err := f.Submit(ctx)
			return submitMsg{gen: gen, sent: sent, err: err}
		}
	}
	return nil
}

func (m *appModel) turnPage(delta int) tea.Cmd {
	if m.dir == nil {
		return nil
	}
	snap := m.dir.Snapshot()
	if snap.Loading || (delta > 0 && !snap.HasNext) || (delta < 0 && !snap.HasPrevious) {
		return nil
	}
	f, ctx, gen := m.dir, m.ctx, m.gen
	return func() tea.Msg {
		var err error
		if delta > 0 {
			_, err = f.Next(ctx)
		} else {
			_, err = f.Previous(ctx)
		}
		return pageMsg{gen: gen, err: err}
	}
}

// enter tears down the page state of the previous route and mounts the new one.
func (m *appModel) enter(c route.Change) tea.Cmd {
	m.leave()
	m.change = c
	m.gen = c.Generation
	m.status = ""
	if !c.Matched {
		return nil
	}

	ctx, gen := m.ctx, m.gen
	switch c.Route.Kind {
	case route.Login:
		m.login = m.app.LoginForm()
		m.form = newForm(
			fieldSpec{name: pages.FieldEmail, labelKey: locale.MsgEmail},
			fieldSpec{name: pages.FieldPassword, labelKey: locale.MsgPassword, secret: true},
		)
		m.form.focusAt(0)
	case route.SignUp:
		m.signup = m.app.SignUpForm()
		m.form = newForm(
			fieldSpec{name: pages.FieldUsername, labelKey: locale.MsgUsername},
			fieldSpec{name: pages.FieldEmail, labelKey: locale.MsgEmail},
			fieldSpec{name: pages.FieldPassword, labelKey: locale.MsgPassword, secret: true},
			fieldSpec{name: pages.FieldPasswordRepeat, labelKey: locale.MsgPasswordRepeat, secret: true},
		)
		m.form.focusAt(0)
	case route.Users:
		m.dir = m.app.Directory()
		m.users.SetItems(nil)
		f := m.dir
		return func() tea.Msg { return pageMsg{gen: gen, err: f.Mount(ctx)} }
	case route.UserDetail:
		m.profile = m.app.Profile(c.Route.UserID)
		p := m.profile
		return func() tea.Msg {
			p.Mount(ctx)
			return profileMsg{gen: gen}
		}
	case route.Activate:
		m.activation = m.app.Activation(c.Route.Token)
		a := m.activation
		return func() tea.Msg {
			a.Mount(ctx)
			return activationMsg{gen: gen}
		}
	}
	return nil
}

func (m *appModel) leave() {
	if m.dir != nil {
		m.dir.Unmount()
	}
	if m.activation != nil {
		m.activation.Unmount()
	}
	if m.profile != nil {
		m.profile.Unmount()
	}
	m.login, m.signup, m.activation, m.profile, m.dir = nil, nil, nil, nil, nil
	m.form = form{focus: -1}
}

func (m *appModel) refreshUsers() {
	snap := m.dir.Snapshot()
	if snap.Result == nil {
		m.users.SetItems(nil)
		return
	}
	m.users.SetItems(userItems(snap.Result.Items))
	m.users.Select(0)
}

func (m *appModel) resize() {
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	m.users.SetSize(m.width, h)
}

func errText(err error) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
