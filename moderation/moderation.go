package moderation

import "context"

// Classifier is the synchronous moderation gate consulted before any user
// supplied text or image is persisted. Both methods return the offending
// category, or "" when the content is acceptable. A classifier failure is
// fatal to the enclosing operation; callers never skip the gate.
type Classifier interface {
	ClassifyText(ctx context.Context, text string) (string, error)
	ClassifyImage(ctx context.Context, image []byte) (string, error)
}
