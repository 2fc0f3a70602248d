package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/repository/sqlite"
	"github.com/isabella232/infrastructure-boxer/pkg/repository/testhelper"
)

func TestLinkStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxer.db")

	store := gt.R1(sqlite.New(path)).NoError(t)
	defer store.Close()

	testhelper.LinkStoreTest(t, store)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxer.db")

	store := gt.R1(sqlite.New(path)).NoError(t)
	gt.NoError(t, store.Close())

	// schema migration must be idempotent
	store = gt.R1(sqlite.New(path)).NoError(t)
	gt.NoError(t, store.Close())
}
