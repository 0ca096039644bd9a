// Package generation defines the contract a causal-LM backend must satisfy
// to serve the dialog orchestrator, plus one provider per hosted backend.
package generation

import "context"

// Params controls one generation call.
type Params struct {
	MaxNewTokens int
	Temperature  float64
	DoSample     bool
}

// Generator produces a raw completion for a fully assembled prompt. The
// prompt is sent verbatim; providers must not truncate or rewrite it.
type Generator interface {
	Generate(ctx context.Context, prompt string, p Params) (string, error)
}

// EffectiveTemperature maps the sampling switch onto the wire parameter:
// greedy decoding when sampling is off.
func (p Params) EffectiveTemperature() float64 {
	if !p.DoSample {
		return 0
	}
	return p.Temperature
}
