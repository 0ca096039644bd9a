package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/generation"
)

var ErrGeneration = errors.New("text generation failed")

// GeneratorSource hands out the memoized text-generation host.
type GeneratorSource interface {
	TextGenerator() (generation.Generator, error)
}

// Synthesizer renders a reply to an audio file and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) (string, error)
}

// Reply is what one successful Send produces: the committed turn plus the
// audio rendering (or the soft error that replaced it).
type Reply struct {
	Turn      session.Turn
	AudioPath string
	AudioErr  error
}

// Service is the dialog orchestrator: prompt assembly, generation, reply
// extraction, memory commit, speech rendering.
type Service struct {
	generators GeneratorSource
	synth      Synthesizer
	logger     *Logger.Logger

	preamble  string
	userLabel string
	persona   string
	lang      string
	params    generation.Params
}

func New(
	generators GeneratorSource,
	synth Synthesizer,
	preamble string,
	personaCfg config.PersonaConfig,
	genCfg config.GeneratorConfig,
	ttsLang string,
	logger *Logger.Logger,
) *Service {
	return &Service{
		generators: generators,
		synth:      synth,
		logger:     logger,
		preamble:   preamble,
		userLabel:  personaCfg.UserLabel,
		persona:    personaCfg.Name,
		lang:       ttsLang,
		params: generation.Params{
			MaxNewTokens: genCfg.MaxNewTokens,
			Temperature:  genCfg.Temperature,
			DoSample:     true,
		},
	}
}

// Delimiter is the literal token separating speaker turns in the prompt.
func (s *Service) Delimiter() string {
	return s.persona + ":"
}

// Send runs one exchange. Exactly one turn is appended on success and none
// on failure; a TTS failure after the commit keeps the text turn and comes
// back in Reply.AudioErr. Blank input is silently ignored (nil, nil).
func (s *Service) Send(ctx context.Context, sess *session.Session, userText string) (*Reply, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return nil, nil
	}

	gen, err := s.generators.TextGenerator()
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(s.preamble, s.userLabel, s.persona, sess.History(), text)
	raw, err := gen.Generate(ctx, prompt, s.params)
	if err != nil {
		s.logger.Errorf("generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	turn := session.Turn{
		User:      text,
		Assistant: ExtractReply(raw, prompt, s.Delimiter()),
	}
	sess.AppendTurn(turn)

	reply := &Reply{Turn: turn}
	audioPath, err := s.synth.Synthesize(ctx, turn.Assistant, s.lang)
	if err != nil {
		// turn already committed; audio is best-effort
		s.logger.Warnf("tts failed after commit: %v", err)
		reply.AudioErr = err
		return reply, nil
	}
	reply.AudioPath = audioPath
	return reply, nil
}

// ClearHistory wipes one session's conversation memory.
func (s *Service) ClearHistory(sess *session.Session) {
	sess.ClearHistory()
	s.logger.Infof("chat history cleared for session %s", sess.ID)
}
