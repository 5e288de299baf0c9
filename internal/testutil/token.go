package testutil

// FixedTokenGenerator generates the same session token every time.
//
// Unlike engine.FixedGenerator, which hands out tokens from a finite
// sequence, this generator always returns the same token. Recorded
// transcripts produced under it are byte-identical across runs, which
// is what golden comparisons need.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for
// concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a fixed session token generator.
// If token is empty, Generate returns "test-session-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-session-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed session token.
//
// Implements engine.SessionTokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
