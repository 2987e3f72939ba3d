package session

import (
	"fmt"

	"github.com/desertthunder/popmix/internal/models"
)

// Event is a user action or an outcome reported back to the session.
type Event interface{ isEvent() }

// SearchChanged is sent whenever the search text changes.
type SearchChanged struct{ Query string }

// SelectAll asks to select every filtered item.
type SelectAll struct{}

// DeselectAll asks to deselect every filtered item.
type DeselectAll struct{}

// Toggle flips the selection of one track.
type Toggle struct{ ID int64 }

// Submit asks to create a playlist from the current selection.
type Submit struct{ Name string }

// PlaylistCreated reports a successful [Persist].
type PlaylistCreated struct{ Result models.CreateResult }

// CreateFailed reports a failed [Persist].
type CreateFailed struct{ Err error }

func (SearchChanged) isEvent()   {}
func (SelectAll) isEvent()       {}
func (DeselectAll) isEvent()     {}
func (Toggle) isEvent()          {}
func (Submit) isEvent()          {}
func (PlaylistCreated) isEvent() {}
func (CreateFailed) isEvent()    {}

// Severity of a notification.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Command is work the caller performs after a transition.
type Command interface{ isCommand() }

// Notify shows a transient message to the user.
type Notify struct {
	Severity Severity
	Message  string
}

// Persist writes a playlist; the outcome comes back as [PlaylistCreated] or [CreateFailed].
type Persist struct {
	Name string
	URIs []string
}

// Reset clears the search and playlist name inputs.
type Reset struct{}

func (Notify) isCommand()  {}
func (Persist) isCommand() {}
func (Reset) isCommand()   {}

// Reduce applies e to s.
//
// Rejected actions leave the state unchanged and produce a [Notify] describing why.
func Reduce(s State, e Event) (State, []Command) {
	switch e := e.(type) {
	case SearchChanged:
		return s.Search(e.Query), nil

	case SelectAll:
		next, err := s.SelectAll()
		if err != nil {
			return s, []Command{notifyError(err)}
		}
		return next, nil

	case DeselectAll:
		next, err := s.DeselectAll()
		if err != nil {
			return s, []Command{notifyError(err)}
		}
		return next, nil

	case Toggle:
		return s.Toggle(e.ID), nil

	case Submit:
		if s.creating {
			return s, []Command{Notify{Severity: Warning, Message: "A playlist is already being created"}}
		}
		_, uris := s.Selection()
		name, err := Validate(e.Name, uris)
		if err != nil {
			return s, []Command{notifyError(err)}
		}
		s.creating = true
		return s, []Command{Persist{Name: name, URIs: uris}}

	case PlaylistCreated:
		s.creating = false
		var cmds []Command
		if e.Result.Renamed() {
			cmds = append(cmds, Notify{
				Severity: Warning,
				Message:  fmt.Sprintf("Playlist %q already exists, saved as %q", e.Result.Requested, e.Result.Name),
			})
		}
		cmds = append(cmds,
			Notify{Severity: Info, Message: fmt.Sprintf("Created playlist: %s (%d tracks)", e.Result.Name, e.Result.Tracks)},
			Reset{},
		)
		return s.ClearSelection().Search(""), cmds

	case CreateFailed:
		s.creating = false
		return s, []Command{Notify{Severity: Error, Message: fmt.Sprintf("Could not create playlist: %v", e.Err)}}
	}

	return s, nil
}

func notifyError(err error) Notify {
	return Notify{Severity: Error, Message: err.Error()}
}
