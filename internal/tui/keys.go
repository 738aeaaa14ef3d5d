package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	GoTo      key.Binding
	Back      key.Binding
	Forward   key.Binding
	Home      key.Binding
	Users     key.Binding
	Login     key.Binding
	SignUp    key.Binding
	Profile   key.Binding
	Logout    key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Locale    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Leave     key.Binding
	Enter     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		GoTo:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to")),
		Back:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "back")),
		Forward:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")),
		Home:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Users:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "users")),
		Login:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		SignUp:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign up")),
		Profile:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		Logout:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		NextPage:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		PrevPage:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous")),
		Locale:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave field")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit/open")),
	}
}
