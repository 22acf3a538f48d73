package model

import "time"

/*

Friendship is a single direction of a symmetric friend relationship.

Every friendship is stored as two mirrored rows (a, b) and (b, a) so that
"list friends of user X" is a single indexed lookup on user_id. The pair of
rows is written in one transaction by the friend management service; this
backend only ever reads them.

Id: primary key
CreatedAt: time when the friendship was established
UserId: the user this row belongs to
FriendId: the user on the other side of the relationship

*/
type Friendship struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UserId    string `gorm:"index;uniqueIndex:idx_friendship_pair"`
	FriendId  string `gorm:"uniqueIndex:idx_friendship_pair"`
}
