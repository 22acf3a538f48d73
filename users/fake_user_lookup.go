package users

import "context"

// FakeLookup is an in-memory Lookup for tests.
type FakeLookup struct {
	known map[string]bool
}

func NewFakeLookup(userIds ...string) *FakeLookup {
	known := make(map[string]bool, len(userIds))
	for _, id := range userIds {
		known[id] = true
	}
	return &FakeLookup{known: known}
}

func (l *FakeLookup) AddUser(userId string) {
	l.known[userId] = true
}

func (l *FakeLookup) Exists(ctx context.Context, userId string) (bool, error) {
	return l.known[userId], nil
}
