package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/popmix/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPlaylistCreated MsgKind = iota
	MsgNotificationExpired
)

type createOutcome struct {
	result models.CreateResult
	err    error
}

// playlistCreatedMsg is the constructor for [MsgPlaylistCreated]
func playlistCreatedMsg(result models.CreateResult, err error) Msg {
	return Msg{kind: MsgPlaylistCreated, data: createOutcome{result, err}}
}

// notificationExpiredMsg is the constructor for [MsgNotificationExpired]
func notificationExpiredMsg(id int) Msg {
	return Msg{kind: MsgNotificationExpired, data: id}
}
