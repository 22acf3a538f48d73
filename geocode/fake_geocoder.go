package geocode

import "context"

// FakeGeocoder resolves from a canned address table, for tests.
type FakeGeocoder struct {
	results map[string]*Result
	// Calls counts Resolve invocations, letting tests assert the resolver
	// geocodes exactly once per resolution.
	Calls int
}

func NewFakeGeocoder() *FakeGeocoder {
	return &FakeGeocoder{results: map[string]*Result{}}
}

func (g *FakeGeocoder) AddResult(address string, result *Result) {
	g.results[address] = result
}

func (g *FakeGeocoder) Resolve(ctx context.Context, address string) (*Result, error) {
	g.Calls++
	result, ok := g.results[address]
	if !ok {
		return nil, nil
	}
	copied := *result
	return &copied, nil
}
