package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New("warn")
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zap.InfoLevel))
	require.True(t, l.Core().Enabled(zap.WarnLevel))

	l, err = New("")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.InfoLevel))
	require.False(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)

	l := Must("loud")
	require.True(t, l.Core().Enabled(zap.InfoLevel))
}
