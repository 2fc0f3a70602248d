package config

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/repository/firestore"
	"github.com/isabella232/infrastructure-boxer/pkg/repository/sqlite"
)

// Database selects the identity-link store backend: SQLite by default, or
// Firestore when a project ID is configured.
type Database struct {
	sqlitePath string

	firestoreProjectID  string
	firestoreDatabaseID string
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "Path to the SQLite identity-link database",
			Category:    "Database",
			Sources:     cli.EnvVars("BOXER_SQLITE_PATH"),
			Value:       "boxer.db",
			Destination: &x.sqlitePath,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Use Firestore instead of SQLite (optional)",
			Category:    "Database",
			Sources:     cli.EnvVars("BOXER_FIRESTORE_PROJECT_ID"),
			Destination: &x.firestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Database",
			Sources:     cli.EnvVars("BOXER_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
			Destination: &x.firestoreDatabaseID,
		},
	}
}

func (x *Database) NewLinkStore(ctx context.Context) (interfaces.LinkStore, error) {
	if x.firestoreProjectID != "" {
		return firestore.New(ctx, x.firestoreProjectID, x.firestoreDatabaseID)
	}
	return sqlite.New(x.sqlitePath)
}

func (x *Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("sqlitePath", x.sqlitePath),
		slog.Any("firestoreProjectID", x.firestoreProjectID),
		slog.Any("firestoreDatabaseID", x.firestoreDatabaseID),
	)
}
