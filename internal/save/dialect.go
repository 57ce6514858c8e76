package save

import (
	"fmt"
	"strings"
)

// dialect abstracts the SQL differences between the SQLite and PostgreSQL
// backends.
type dialect interface {
	// DriverName is the name passed to sql.Open.
	DriverName() string

	// InitStatements run once after connecting.
	InitStatements() []string

	// Rewrite converts a query written with ? placeholders into the
	// dialect's placeholder style.
	Rewrite(query string) string
}

func dialectFor(driver string) dialect {
	if driver == "postgres" {
		return &postgresDialect{}
	}
	return &sqliteDialect{}
}

type sqliteDialect struct{}

func (d *sqliteDialect) DriverName() string { return "sqlite" }

func (d *sqliteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (d *sqliteDialect) Rewrite(query string) string { return query }

type postgresDialect struct{}

func (d *postgresDialect) DriverName() string { return "postgres" }

func (d *postgresDialect) InitStatements() []string { return nil }

// Rewrite converts ? placeholders to $1, $2, ...
func (d *postgresDialect) Rewrite(query string) string {
	var out strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			out.WriteString(fmt.Sprintf("$%d", position))
			position++
		} else {
			out.WriteByte(query[i])
		}
	}
	return out.String()
}
