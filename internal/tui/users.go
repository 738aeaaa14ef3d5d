package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"userdir-cli/internal/model"
)

type userItem struct {
	user model.UserSummary
}

func (i userItem) FilterValue() string { return i.user.Username }
func (i userItem) Title() string       { return i.user.Username }

type userDelegate struct{}

func (userDelegate) Height() int                             { return 1 }
func (userDelegate) Spacing() int                            { return 0 }
func (userDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (userDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(userItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	line := fmt.Sprintf("  %s  %s", it.user.Username, styleMuted.Render(it.user.Email))
	if index == m.Index() {
		line = "> " + line[2:]
	}
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	if index == m.Index() {
		line = styleSelected.Render(line)
	}
	fmt.Fprint(w, line)
}

func newUserList() list.Model {
	l := list.New(nil, userDelegate{}, 0, 0)
	// Header, pager and help are rendered by the app model.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// Page keys belong to the directory fetcher, not the list's local pager.
	l.KeyMap.NextPage.SetEnabled(false)
	l.KeyMap.PrevPage.SetEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

func userItems(users []model.UserSummary) []list.Item {
	items := make([]list.Item, 0, len(users))
	for _, u := range users {
		items = append(items, userItem{user: u})
	}
	return items
}
