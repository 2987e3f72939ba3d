// package models defines the records read from and written to the Lollypop databases
package models

import (
	"fmt"
	"time"
)

// Track is one row of the catalog join: a track with one of its artists and its album.
//
// A track credited to several artists is returned once per artist, all sharing the same ID and URI.
type Track struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	URI    string `json:"uri"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// Label renders the track as shown in the track list.
func (t Track) Label() string {
	return fmt.Sprintf("%s ⦑%s⦒「%s」", t.Name, t.Artist, t.Album)
}

func (t Track) String() string { return t.Label() }

// Playlist is a row of the playlist store.
type Playlist struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	MTime time.Time `json:"mtime"` // zero when the stored value could not be parsed
}

// PlaylistEntry associates a playlist with one track URI.
type PlaylistEntry struct {
	PlaylistID int64  `json:"playlist_id"`
	URI        string `json:"uri"`
}

// CreateResult describes a playlist that was persisted.
type CreateResult struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`      // effective (persisted) name
	Requested string `json:"requested"` // name asked for by the caller
	Tracks    int    `json:"tracks"`
}

// Renamed reports whether the requested name collided with an existing playlist.
func (r CreateResult) Renamed() bool {
	return r.Name != r.Requested
}
