package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type retryPageCommand struct {
	Source string
}

func (retryPageCommand) Type() string { return "mdsite.test.dispatch.retry" }

func (retryPageCommand) Validate() error { return nil }

type failingPageCommand struct {
	Source string
}

func (failingPageCommand) Type() string { return "mdsite.test.dispatch.failing" }

func (failingPageCommand) Validate() error { return nil }

func TestDispatcherRetriesUntilSuccess(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, msg retryPageCommand) error {
		attempts++
		if attempts == 1 {
			return errors.New("output directory busy")
		}
		return nil
	}, WithTimeout[retryPageCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), retryPageCommand{Source: "index.md"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts (initial + retry), got %d", attempts)
	}
}

func TestDispatcherRetryExhaustionPropagatesError(t *testing.T) {
	var attempts int
	handler := NewHandler(func(ctx context.Context, _ failingPageCommand) error {
		attempts++
		return errors.New("template missing")
	}, WithTimeout[failingPageCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), failingPageCommand{Source: "about.md"})
	if err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", attempts)
	}
}
