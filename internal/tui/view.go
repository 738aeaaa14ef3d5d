package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"userdir-cli/internal/locale"
	"userdir-cli/internal/pages"
	"userdir-cli/internal/route"
)

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	parts := []string{m.viewHeader(width), m.viewBody(width)}
	if m.prompting {
		parts = append(parts, m.prompt.View())
	}
	if m.status != "" {
		parts = append(parts, styleError.Render(m.status))
	}
	parts = append(parts, m.viewFooter(width))

	out := strings.Join(parts, "\n\n")
	if m.height > 0 {
		out = clampHeight(out, m.height)
	}
	return out
}

func (m appModel) t(key string) string { return m.app.T(key) }

func (m appModel) viewHeader(width int) string {
	links := m.app.Nav.Links()
	item := func(k, label string, active bool) string {
		s := styleLinkKey.Render("["+k+"]") + " "
		if active {
			return s + styleTitle.Render(label)
		}
		return s + styleLink.Render(label)
	}
	kind := m.change.Route.Kind
	matched := m.change.Matched

	var bar []string
	bar = append(bar, item("h", m.t(locale.MsgHome), matched && kind == route.Home))
	bar = append(bar, item("u", m.t(locale.MsgUsers), matched && kind == route.Users))
	if links.ShowLogin {
		bar = append(bar, item("l", m.t(locale.MsgLogin), matched && kind == route.Login))
	}
	if links.ShowSignUp {
		bar = append(bar, item("s", m.t(locale.MsgSignUp), matched && kind == route.SignUp))
	}
	if links.ShowProfileLink && links.ProfileHref != nil {
		bar = append(bar, item("p", m.t(locale.MsgProfile), m.change.Path == *links.ProfileHref))
		bar = append(bar, item("o", m.t(locale.MsgLogout), false))
	}

	meta := fmt.Sprintf("%s   %s", m.change.Path, m.t(locale.MsgLanguage))
	if st := m.app.Session.State(); st.IsLoggedIn && st.Username != nil {
		meta += "   " + *st.Username
	}
	return fitWidth(strings.Join(bar, "  ")+"\n"+styleMuted.Render(meta), width)
}

func (m appModel) viewBody(width int) string {
	if !m.change.Matched {
		return styleError.Render(m.t(locale.MsgNotFound))
	}
	switch m.change.Route.Kind {
	case route.Home:
		return renderMarkdown("# "+m.t(locale.MsgHome)+"\n\n"+m.t(locale.MsgHomeIntro), width)
	case route.Login:
		return m.viewLogin()
	case route.SignUp:
		return m.viewSignUp()
	case route.Users:
		return m.viewUsers(width)
	case route.UserDetail:
		return m.viewProfile()
	case route.Activate:
		return m.viewActivation()
	}
	return ""
}

func (m appModel) viewField(i int, errs *pages.FieldErrors, extra string) string {
	fld := m.form.fields[i]
	label := styleLabel.Render(m.t(fld.labelKey))
	if m.form.focus == i {
		label = "> " + label
	} else {
		label = "  " + label
	}
	lines := []string{label, "  " + fld.input.View()}
	if msg := errs.Get(fld.name); msg != "" {
		lines = append(lines, "  "+styleError.Render(msg))
	}
	if extra != "" {
		lines = append(lines, "  "+styleError.Render(extra))
	}
	return strings.Join(lines, "\n")
}

// formAlerts renders messages whose key is not a field of the form.
func (m appModel) formAlerts(errs *pages.FieldErrors) string {
	fieldNames := map[string]bool{}
	for _, f := range m.form.fields {
		fieldNames[f.name] = true
	}
	var out []string
	for _, k := range errs.Keys() {
		if !fieldNames[k] {
			out = append(out, styleError.Render(errs.Get(k)))
		}
	}
	return strings.Join(out, "\n")
}

func button(label string, enabled, busy bool, loading string) string {
	if busy {
		return styleDisabled.Render(label) + " " + styleMuted.Render(loading)
	}
	if enabled {
		return styleButton.Render(label)
	}
	return styleDisabled.Render(label)
}

func (m appModel) viewLogin() string {
	f := m.login
	if f == nil {
		return ""
	}
	var parts []string
	parts = append(parts, styleTitle.Render(m.t(locale.MsgLogin)))
	for i := range m.form.fields {
		parts = append(parts, m.viewField(i, &f.Errors, ""))
	}
	parts = append(parts, button(m.t(locale.MsgLogin), f.CanSubmit(), f.Submitting(), m.t(locale.MsgLoading)))
	if a := m.formAlerts(&f.Errors); a != "" {
		parts = append(parts, a)
	}
	return strings.Join(parts, "\n\n")
}

func (m appModel) viewSignUp() string {
	f := m.signup
	if f == nil {
		return ""
	}
	if f.Done() {
		return styleSuccess.Render(m.t(locale.MsgActivationNotice))
	}
	var parts []string
	parts = append(parts, styleTitle.Render(m.t(locale.MsgSignUp)))
	for i, fld := range m.form.fields {
		extra := ""
		if fld.name == pages.FieldPasswordRepeat {
			extra = f.PasswordMismatch()
		}
		parts = append(parts, m.viewField(i, &f.Errors, extra))
	}
	parts = append(parts, button(m.t(locale.MsgSignUp), f.CanSubmit(), f.Submitting(), m.t(locale.MsgLoading)))
	if a := m.formAlerts(&f.Errors); a != "" {
		parts = append(parts, a)
	}
	return strings.Join(parts, "\n\n")
}

func (m appModel) viewUsers(width int) string {
	title := styleTitle.Render(m.t(locale.MsgUsers))
	if m.dir == nil {
		return title
	}
	snap := m.dir.Snapshot()
	if snap.Result == nil {
		if snap.Err != nil {
			return title + "\n\n" + styleError.Render(errText(snap.Err))
		}
		return title + "\n\n" + styleMuted.Render(m.t(locale.MsgLoading))
	}
	if len(snap.Result.Items) == 0 {
		return title + "\n\n" + styleMuted.Render(m.t(locale.MsgNoUsers))
	}

	l := m.users
	if l.Width() == 0 {
		l.SetSize(width, len(snap.Result.Items))
	}

	var pager []string
	if snap.HasPrevious {
		pager = append(pager, styleLinkKey.Render("[b]")+" "+styleLink.Render("< "+m.t(locale.MsgPrevious)))
	}
	pager = append(pager, styleMuted.Render(fmt.Sprintf(m.t(locale.MsgPageOf), snap.CurrentPage+1, snap.Result.TotalPages)))
	if snap.HasNext {
		pager = append(pager, styleLink.Render(m.t(locale.MsgNext)+" >")+" "+styleLinkKey.Render("[n]"))
	}
	if snap.Loading {
		pager = append(pager, styleMuted.Render(m.t(locale.MsgLoading)))
	}
	out := title + "\n\n" + l.View() + "\n\n" + strings.Join(pager, "   ")
	if snap.Err != nil {
		out += "\n" + styleError.Render(errText(snap.Err))
	}
	return out
}

func (m appModel) viewProfile() string {
	if m.profile == nil {
		return ""
	}
	st, u, msg := m.profile.State()
	switch st {
	case pages.StatusSuccess:
		lines := []string{styleTitle.Render(u.Username), u.Email}
		if u.Image != nil {
			lines = append(lines, styleMuted.Render(*u.Image))
		}
		return strings.Join(lines, "\n")
	case pages.StatusNotFound, pages.StatusFailed:
		return styleError.Render(msg)
	}
	return styleMuted.Render(m.t(locale.MsgLoading))
}

func (m appModel) viewActivation() string {
	if m.activation == nil {
		return ""
	}
	st, msg := m.activation.State()
	switch st {
	case pages.StatusSuccess:
		return styleSuccess.Render(msg)
	case pages.StatusFailed:
		return styleError.Render(msg)
	}
	return styleMuted.Render(m.t(locale.MsgLoading))
}

func (m appModel) viewFooter(width int) string {
	var bindings []key.Binding
	switch {
	case m.form.focused():
		bindings = []key.Binding{m.keys.NextField, m.keys.Leave, m.keys.Enter}
	case m.onForm():
		bindings = []key.Binding{m.keys.GoTo, m.keys.Back, m.keys.Forward, m.keys.NextField, m.keys.Enter, m.keys.Locale, m.keys.Quit}
	case m.dir != nil:
		bindings = []key.Binding{m.keys.GoTo, m.keys.Back, m.keys.Forward, m.keys.NextPage, m.keys.PrevPage, m.keys.Enter, m.keys.Locale, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.GoTo, m.keys.Back, m.keys.Forward, m.keys.Locale, m.keys.Quit}
	}

	h := help.New()
	h.Width = width
	return lipgloss.NewStyle().Faint(true).Render(h.ShortHelpView(bindings))
}
