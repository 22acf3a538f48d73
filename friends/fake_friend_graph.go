package friends

import "context"

// FakeGraph is an in-memory Graph for tests.
type FakeGraph struct {
	friends map[string][]string
}

func NewFakeGraph() *FakeGraph {
	return &FakeGraph{friends: map[string][]string{}}
}

// Befriend records a symmetric friendship between the two users.
func (g *FakeGraph) Befriend(userId string, otherUserId string) {
	g.friends[userId] = append(g.friends[userId], otherUserId)
	g.friends[otherUserId] = append(g.friends[otherUserId], userId)
}

func (g *FakeGraph) AreFriends(ctx context.Context, userId string, otherUserId string) (bool, error) {
	for _, id := range g.friends[userId] {
		if id == otherUserId {
			return true, nil
		}
	}
	return false, nil
}

func (g *FakeGraph) ListFriends(ctx context.Context, userId string) ([]string, error) {
	return g.friends[userId], nil
}
