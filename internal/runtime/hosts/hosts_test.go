package hosts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/generation"
)

type fakeGenerator struct{}

func (fakeGenerator) Generate(ctx context.Context, prompt string, p generation.Params) (string, error) {
	return "ok", nil
}

type fakeRecognizer struct{}

func (fakeRecognizer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return "transcript", nil
}

func TestTextGeneratorInitializedOnce(t *testing.T) {
	var calls int32
	h := New(
		func() (generation.Generator, error) {
			atomic.AddInt32(&calls, 1)
			return fakeGenerator{}, nil
		},
		func() (Recognizer, error) { return fakeRecognizer{}, nil },
		Logger.New(true),
	)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.TextGenerator(); err != nil {
				t.Errorf("TextGenerator: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("factory invoked %d times, want 1", n)
	}
}

func TestInitErrorIsMemoized(t *testing.T) {
	var calls int32
	h := New(
		func() (generation.Generator, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("weights missing")
		},
		func() (Recognizer, error) { return fakeRecognizer{}, nil },
		Logger.New(true),
	)

	for i := 0; i < 3; i++ {
		if _, err := h.TextGenerator(); !errors.Is(err, ErrModelInit) {
			t.Fatalf("expected ErrModelInit, got %v", err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("failed factory retried %d times, want 1", n)
	}
}

func TestSpeechRecognizerInitializedOnce(t *testing.T) {
	var calls int32
	h := New(
		func() (generation.Generator, error) { return fakeGenerator{}, nil },
		func() (Recognizer, error) {
			atomic.AddInt32(&calls, 1)
			return fakeRecognizer{}, nil
		},
		Logger.New(true),
	)

	for i := 0; i < 3; i++ {
		rec, err := h.SpeechRecognizer()
		if err != nil {
			t.Fatalf("SpeechRecognizer: %v", err)
		}
		if rec == nil {
			t.Fatal("expected recognizer")
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("factory invoked %d times, want 1", n)
	}
}
