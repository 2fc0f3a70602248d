package logging_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Run("configure with json format to stdout", func(t *testing.T) {
		gt.NoError(t, logging.Configure("json", "info", "stdout"))
	})

	t.Run("configure with text format", func(t *testing.T) {
		gt.NoError(t, logging.Configure("text", "debug", "stdout"))
	})

	t.Run("configure with invalid format returns error", func(t *testing.T) {
		gt.Error(t, logging.Configure("invalid", "info", "stdout"))
	})

	t.Run("configure with invalid level returns error", func(t *testing.T) {
		gt.Error(t, logging.Configure("json", "invalid", "stdout"))
	})
}

func TestDefault(t *testing.T) {
	logger := logging.Default()
	logger.Info("test message", "key", "value")
}
