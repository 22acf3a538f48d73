package wants

import (
	"sort"
	"time"

	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/utils"
)

// Feed scoring. Every term contributes a negative cost and the feed is
// sorted ascending over the summed score, so the most relevant wants come
// first. Ties keep their candidate-set order.
//
// TODO(marcus): this is a fixed heuristic; feeding userId in here and
// learning the weights would be an interesting follow-up.

// feedCandidate is the ephemeral ranking projection of a want. It exists
// only for the duration of one Rank call and is never persisted.
type feedCandidate struct {
	want  *model.Want
	score float64
}

func visibilityScore(kind model.WantVisibleTo) float64 {
	switch kind {
	case model.WantVisibleToFriends:
		return -0.2
	case model.WantVisibleToPublic:
		return -0.15
	default:
		return -0.25
	}
}

// Age buckets over whole days since creation, most recent first.
var ageBuckets = []struct {
	maxDays int
	score   float64
}{
	{1, -0.25},
	{3, -0.2},
}

func ageScore(createdAt time.Time, now time.Time) float64 {
	days := int(now.Sub(createdAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	for _, bucket := range ageBuckets {
		if days <= bucket.maxDays {
			return bucket.score
		}
	}
	return -0.15
}

// Member-count buckets; fuller wants rank higher. Administrators are not
// members and do not count.
var memberBuckets = []struct {
	maxMembers int
	score      float64
}{
	{2, -0.15},
	{4, -0.2},
}

func memberCountScore(memberCount int) float64 {
	for _, bucket := range memberBuckets {
		if memberCount <= bucket.maxMembers {
			return bucket.score
		}
	}
	return -0.25
}

// Distance buckets in kilometers; nearer wants rank higher.
var distanceBuckets = []struct {
	belowKm float64
	score   float64
}{
	{4, -0.25},
	{8, -0.2},
}

func locationScore(want *model.Want, origin *model.GeolocationCoordinates) float64 {
	location := want.Visibility.Location
	if location == nil || origin == nil {
		return 0
	}
	distanceKm := utils.GreatCircleDistanceKm(location.Coordinates, *origin)
	for _, bucket := range distanceBuckets {
		if distanceKm < bucket.belowKm {
			return bucket.score
		}
	}
	return -0.15
}

func feedScore(want *model.Want, origin *model.GeolocationCoordinates, now time.Time) float64 {
	return visibilityScore(want.Visibility.VisibleTo) +
		ageScore(want.CreatedAt, now) +
		memberCountScore(len(want.MemberIds)) +
		locationScore(want, origin)
}

// Rank orders the candidate set most relevant first. now is passed in
// explicitly so ranking is deterministic and testable; calling Rank twice
// with identical inputs yields the identical sequence.
func Rank(candidates []*model.Want, origin *model.GeolocationCoordinates, now time.Time) []*model.Want {
	scored := make([]feedCandidate, 0, len(candidates))
	for _, want := range candidates {
		scored = append(scored, feedCandidate{
			want:  want,
			score: feedScore(want, origin, now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})

	ranked := make([]*model.Want, 0, len(scored))
	for _, candidate := range scored {
		ranked = append(ranked, candidate.want)
	}
	return ranked
}
