package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/story-playback/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDoSucceedsAfterRetry(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test"})
	calls := 0

	err := Do(context.Background(), log, "flaky", func() error {
		calls++
		if calls < 2 {
			return errors.New("temporary")
		}
		return nil
	}, fastConfig())

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoGivesUp(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test"})
	calls := 0

	err := Do(context.Background(), log, "broken", func() error {
		calls++
		return errors.New("permanent")
	}, fastConfig())

	assert.EqualError(t, err, "permanent")
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test"})
	calls := 0
	missing := errors.New("missing")

	err := Do(context.Background(), log, "lookup", func() error {
		calls++
		return Permanent(missing)
	}, fastConfig())

	assert.ErrorIs(t, err, missing)
	assert.Equal(t, 1, calls)
}

func TestDoStopsWhenContextIsDone(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0

	err := Do(ctx, log, "cancelled", func() error {
		calls++
		return errors.New("temporary")
	}, fastConfig())

	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}
