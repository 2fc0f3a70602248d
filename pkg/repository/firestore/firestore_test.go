package firestore_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/repository/firestore"
	"github.com/isabella232/infrastructure-boxer/pkg/repository/testhelper"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/testutil"
)

func TestLinkStore(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_FIRESTORE_PROJECT_ID")
	databaseID := testutil.GetEnvOrSkip(t, "TEST_FIRESTORE_DATABASE_ID")

	store := gt.R1(firestore.New(context.Background(), projectID, databaseID)).NoError(t)
	defer store.Close()

	testhelper.LinkStoreTest(t, store)
}
