package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFallbackChainFirstSuccessWins(t *testing.T) {
	var called []string
	result, err := RunFallbackChain(context.Background(), []string{"a", "b", "c"}, func(ctx context.Context, model string) (string, error) {
		called = append(called, model)
		switch model {
		case "a":
			return "", errors.New("gateway error 500: boom")
		case "b":
			return "  concept  ", nil
		}
		return "unreachable", nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, called)
	winner, ok := result.Winner()
	require.True(t, ok)
	assert.Equal(t, "b", winner.Model)
	assert.Equal(t, "concept", winner.Content)
	require.Len(t, result.Attempts, 2)
	assert.False(t, result.Attempts[0].OK())
}

func TestRunFallbackChainExhausted(t *testing.T) {
	result, err := RunFallbackChain(context.Background(), []string{"a", "b"}, func(ctx context.Context, model string) (string, error) {
		if model == "a" {
			return "   ", nil
		}
		return "", errors.New("last failure")
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrAllModelsFailed)
	var chainErr *ChainError
	require.ErrorAs(t, err, &chainErr)
	assert.Contains(t, err.Error(), "last failure")
	assert.Equal(t, "a, b", chainErr.Models())

	require.Len(t, result.Attempts, 2)
	assert.ErrorIs(t, result.Attempts[0].Err, ErrEmptyCompletion)
	_, ok := result.Winner()
	assert.False(t, ok)
}

func TestRunFallbackChainStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := RunFallbackChain(ctx, []string{"a", "b", "c"}, func(ctx context.Context, model string) (string, error) {
		calls++
		cancel()
		return "", ctx.Err()
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunFallbackChainNoModels(t *testing.T) {
	_, err := RunFallbackChain(context.Background(), nil, func(ctx context.Context, model string) (string, error) {
		return "x", nil
	})
	assert.ErrorIs(t, err, ErrAllModelsFailed)
}
