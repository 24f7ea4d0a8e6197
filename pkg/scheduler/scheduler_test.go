package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidEntries(t *testing.T) {
	s, err := New(nil, []Entry{
		{Cron: "@hourly", Query: "Generate the Q4 sales report"},
		{Cron: "0 9 * * 1", Query: "What's the weather in London?"},
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNew_InvalidCron(t *testing.T) {
	_, err := New(nil, []Entry{{Cron: "not a cron", Query: "q"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestStartStop(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)

	s.Start()
	s.Stop()
}
