package utils

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldHookAddsFields(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(NewFieldHook(logrus.Fields{"run_id": "abc"}))
	hook := test.NewLocal(logger)

	logger.Info("first")
	logger.WithField("run_id", "override").Warn("second")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].Data["run_id"])
	assert.Equal(t, "override", entries[1].Data["run_id"])
}
