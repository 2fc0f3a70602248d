package errutil_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"

	"github.com/isabella232/infrastructure-boxer/pkg/utils/errutil"
)

func TestHandleError(t *testing.T) {
	t.Run("handle error with values", func(t *testing.T) {
		ctx := context.Background()
		err := goerr.New("convergence failed", goerr.V("team", "foo committers"))

		errutil.HandleError(ctx, "test message", err)
	})

	t.Run("handle nil error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", nil)
	})
}
