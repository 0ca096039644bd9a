// Package hosts holds the process-wide inference backends. Each host is
// constructed on first use, memoized for the process lifetime, and never
// torn down.
package hosts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/generation"
)

var ErrModelInit = errors.New("model host initialization failed")

// Recognizer converts an audio clip on disk to a transcript.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type GeneratorFactory func() (generation.Generator, error)
type RecognizerFactory func() (Recognizer, error)

// Hosts memoizes the two model backends. First use may be slow; callers
// tolerate the one-time delay. An init error is memoized too: the process
// cannot chat, but it keeps serving the rest of the UI.
type Hosts struct {
	logger *Logger.Logger

	genFactory GeneratorFactory
	genOnce    sync.Once
	gen        generation.Generator
	genErr     error

	sttFactory RecognizerFactory
	sttOnce    sync.Once
	stt        Recognizer
	sttErr     error
}

func New(genFactory GeneratorFactory, sttFactory RecognizerFactory, logger *Logger.Logger) *Hosts {
	return &Hosts{
		logger:     logger,
		genFactory: genFactory,
		sttFactory: sttFactory,
	}
}

// TextGenerator returns the process text-generation pipeline.
func (h *Hosts) TextGenerator() (generation.Generator, error) {
	h.genOnce.Do(func() {
		h.logger.Info("initializing text generator host")
		gen, err := h.genFactory()
		if err != nil {
			h.genErr = fmt.Errorf("%w: %v", ErrModelInit, err)
			h.logger.Errorf("text generator init: %v", err)
			return
		}
		h.gen = gen
	})
	return h.gen, h.genErr
}

// SpeechRecognizer returns the process speech-to-text backend.
func (h *Hosts) SpeechRecognizer() (Recognizer, error) {
	h.sttOnce.Do(func() {
		h.logger.Info("initializing speech recognizer host")
		stt, err := h.sttFactory()
		if err != nil {
			h.sttErr = fmt.Errorf("%w: %v", ErrModelInit, err)
			h.logger.Errorf("speech recognizer init: %v", err)
			return
		}
		h.stt = stt
	})
	return h.stt, h.sttErr
}
