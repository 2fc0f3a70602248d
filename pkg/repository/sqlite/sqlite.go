package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS ids (
    asfid TEXT PRIMARY KEY,
    githubid TEXT NOT NULL DEFAULT '',
    github_numeric_id INTEGER NOT NULL DEFAULT 0,
    mfa INTEGER NOT NULL DEFAULT 0,
    display_name TEXT NOT NULL DEFAULT '',
    updated TIMESTAMP NOT NULL
);
`

type linkStore struct {
	db *sql.DB
}

// New opens (or creates) a SQLite-backed identity-link store at the given
// path.
func New(path string) (interfaces.LinkStore, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping sqlite database", goerr.V("path", path))
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to migrate sqlite schema")
	}

	return &linkStore{db: db}, nil
}

func (x *linkStore) Get(ctx context.Context, id types.ASFID) (*model.IdentityLink, error) {
	link := &model.IdentityLink{ASFID: id}
	var mfa int

	err := x.db.QueryRowContext(ctx,
		`SELECT githubid, github_numeric_id, mfa, display_name, updated FROM ids WHERE asfid = ?`, string(id),
	).Scan(&link.GitHubLogin, &link.GitHubID, &mfa, &link.DisplayName, &link.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(repository.ErrNotFound, "no identity link", goerr.V("asfID", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query identity link", goerr.V("asfID", id))
	}

	link.MFA = mfa != 0
	return link, nil
}

func (x *linkStore) Put(ctx context.Context, link *model.IdentityLink) error {
	if link == nil || link.ASFID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "identity link needs an ASF ID")
	}

	mfa := 0
	if link.MFA {
		mfa = 1
	}

	_, err := x.db.ExecContext(ctx,
		`INSERT INTO ids (asfid, githubid, github_numeric_id, mfa, display_name, updated)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(asfid) DO UPDATE SET
		     githubid = excluded.githubid,
		     github_numeric_id = excluded.github_numeric_id,
		     mfa = excluded.mfa,
		     display_name = excluded.display_name,
		     updated = excluded.updated`,
		string(link.ASFID), string(link.GitHubLogin), link.GitHubID, mfa, link.DisplayName, time.Now(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert identity link", goerr.V("asfID", link.ASFID))
	}

	return nil
}

func (x *linkStore) Close() error {
	return x.db.Close()
}
