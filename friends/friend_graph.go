package friends

import "context"

// Graph is the read-only gateway into the friend subsystem. Friendship is
// symmetric: AreFriends(a, b) == AreFriends(b, a). Friendship CRUD lives in
// the friend management service, not here.
type Graph interface {
	AreFriends(ctx context.Context, userId string, otherUserId string) (bool, error)
	ListFriends(ctx context.Context, userId string) ([]string, error)
}
