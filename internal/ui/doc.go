// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The screen is a single view built for assembling a playlist:
//  1. Search input with Select All / Deselect All actions
//  2. All Songs list with a checkbox per track, next to the Selected Songs panel
//  3. Playlist name input with the Create action
//  4. Transient notifications and contextual help
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Key presses become
// [session.Event] values; the commands returned by [session.Reduce] are carried out here. Persisting a playlist
// runs as a [tea.Cmd] whose outcome comes back through the [Msg] union and is reduced like any other event.
//
// Focus cycles with tab/shift+tab; bulk actions and create are bound to ctrl+a, ctrl+d and ctrl+s so they work
// from every region.
package ui
