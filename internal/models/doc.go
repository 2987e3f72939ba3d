// Package models defines the records exchanged between the popmix stores, the selection session and the UI.
//
//   - [Track] : a catalog join row (track, artist, album) with its playable URI
//   - [Playlist] : a playlist row from the playlist store
//   - [PlaylistEntry] : a (playlist, URI) association
//   - [CreateResult] : outcome of persisting a new playlist, including the effective name
//
// Records replace positional row tuples; repositories scan directly into them.
package models
