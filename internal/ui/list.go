package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/popmix/internal/session"
	"github.com/mattn/go-runewidth"
)

var (
	_ list.Item         = trackItem{}
	_ list.ItemDelegate = trackDelegate{}
)

// trackItem wraps [session.Item] to implement [list.Item].
type trackItem struct {
	item session.Item
}

func (i trackItem) FilterValue() string { return i.item.Label }

// trackDelegate renders one checkbox row per track.
type trackDelegate struct {
	selected func(id int64) bool
}

func (d trackDelegate) Height() int                             { return 1 }
func (d trackDelegate) Spacing() int                            { return 0 }
func (d trackDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d trackDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(trackItem)
	if !ok {
		return
	}

	check := "[ ]"
	if d.selected != nil && d.selected(it.item.ID) {
		check = "[x]"
	}

	line := fmt.Sprintf("%s %s", check, it.item.Label)
	line = truncate(line, m.Width()-2)

	if index == m.Index() {
		fmt.Fprint(w, styles.cursor.Render("> "+line))
		return
	}
	fmt.Fprint(w, "  "+line)
}

// truncate shortens s to width terminal cells; labels carry wide glyphs.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func toListItems(items []session.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = trackItem{item: item}
	}
	return out
}
