package llm

import "context"

// StubClient is a scripted Client used by tests and by any caller that
// needs a deterministic stand-in instead of a live provider. Responses is
// consumed in order; once exhausted, Complete returns Err (or a default
// Unavailable error if Err is nil).
type StubClient struct {
	Responses []string
	Err       error

	calls int
}

// NewStubClient returns a StubClient that yields responses in order.
func NewStubClient(responses ...string) *StubClient {
	return &StubClient{Responses: responses}
}

// Calls reports how many times Complete has been invoked.
func (s *StubClient) Calls() int { return s.calls }

func (s *StubClient) Complete(_ context.Context, _ Request) (string, error) {
	s.calls++
	if s.calls <= len(s.Responses) {
		return s.Responses[s.calls-1], nil
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "", Unavailable(nil)
}

var _ Client = (*StubClient)(nil)
