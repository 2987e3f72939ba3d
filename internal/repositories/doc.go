// Package repositories implements SQLite access to the two Lollypop databases.
//
// Key Implementations:
//   - [CatalogRepository] : read-only join of tracks, artists and albums from the collection database
//   - [PlaylistStore] : playlist listing and creation in the playlist database
//
// Connections are scoped to a single operation. [LoadCatalog] opens the catalog read-only and closes it after
// the initial read; [PlaylistStore] opens the playlist database for each call and never creates the file.
// All writes use parameterized statements.
package repositories
