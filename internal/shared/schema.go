package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// Schema names of the embedded SQL scripts.
const (
	CatalogSchema   = "catalog"
	PlaylistsSchema = "playlists"
)

// LoadSchema returns the embedded SQL script with the given name.
func LoadSchema(name string) (string, error) {
	content, err := schemaFiles.ReadFile(path.Join("sql", name+".sql"))
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(content), nil
}

// ApplySchema creates the tables of the named schema in a single transaction.
//
// Lollypop owns both databases; this only builds empty stores for fixtures and scratch use.
func ApplySchema(db *sql.DB, name string) error {
	script, err := LoadSchema(name)
	if err != nil {
		return err
	}
	return ExecScript(db, script)
}

// ExecScript executes each ";"-separated statement of script inside one transaction.
func ExecScript(db *sql.DB, script string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(removeComments(stmt))
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}

	return tx.Commit()
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
