package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/goserg/hackathon/bot/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptions(t *testing.T) {
	ctx := context.Background()
	l := logrus.New()
	l.SetOutput(io.Discard)
	s, err := New(l, filepath.Join(t.TempDir(), "bot.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	require.NoError(t, s.Subscribe(ctx, 20, model.PhaseChanged))
	require.NoError(t, s.Subscribe(ctx, 10, model.PhaseChanged))
	require.NoError(t, s.Subscribe(ctx, 10, model.PhaseChanged))

	subs, err := s.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, int64(10), subs[0].ChatID)
	assert.Equal(t, model.PhaseChanged, subs[0].Event)

	require.NoError(t, s.Unsubscribe(ctx, 10, model.PhaseChanged))
	subs, err = s.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(20), subs[0].ChatID)
}
