package repositories

import (
	"github.com/rifat-hasan/socialine/backend/internal/models"
)

// maxLatestActors caps how many actors a group card shows.
const maxLatestActors = 2

// groupKey is the composite grouping key: two events merge iff their
// truncated timestamps, post reference and kind all match.
type groupKey struct {
	bucket string
	postID string // empty for follow events
	kind   models.NotificationKind
}

type groupAccumulator struct {
	group      models.NotificationGroup
	seenActors map[string]struct{}
}

// groupNotifications partitions events into feed-visible cards. The input
// must be sorted by createdAt descending (with id as tiebreak); the first
// event seen for a key is then its most recent one, so it supplies the
// group's representative id and timestamp, and groups emerge already ordered
// by recency. Actors are deduplicated in scan order: an actor's first
// (most recent) occurrence fixes their rank, later duplicates are dropped,
// and ActorsCount counts distinct actors before the truncation to
// maxLatestActors.
func groupNotifications(events []models.NotificationEvent, g Granularity) []models.NotificationGroup {
	accs := make(map[groupKey]*groupAccumulator)
	order := make([]groupKey, 0, len(events))

	for _, ev := range events {
		key := groupKey{
			bucket: bucketLabel(ev.CreatedAt, g),
			kind:   ev.Kind,
		}
		if ev.Post != nil {
			key.postID = ev.Post.ID
		}

		acc, ok := accs[key]
		if !ok {
			acc = &groupAccumulator{
				group: models.NotificationGroup{
					ID:           ev.ID.Hex(),
					Kind:         ev.Kind,
					Post:         ev.Post,
					CreatedAt:    ev.CreatedAt,
					LatestActors: []models.UserSummary{},
				},
				seenActors: make(map[string]struct{}),
			}
			accs[key] = acc
			order = append(order, key)
		}

		if _, dup := acc.seenActors[ev.Actor.ID]; dup {
			continue
		}
		acc.seenActors[ev.Actor.ID] = struct{}{}
		acc.group.ActorsCount++
		if len(acc.group.LatestActors) < maxLatestActors {
			acc.group.LatestActors = append(acc.group.LatestActors, ev.Actor)
		}
	}

	groups := make([]models.NotificationGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, accs[key].group)
	}
	return groups
}
