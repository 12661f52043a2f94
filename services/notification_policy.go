package services

import "github.com/google/uuid"

// AssignedRecipients returns the users in newIDs that were not already in
// oldIDs, without the actor. Duplicates in newIDs collapse.
func AssignedRecipients(oldIDs, newIDs []uuid.UUID, actorID uuid.UUID) []uuid.UUID {
	old := make(map[uuid.UUID]struct{}, len(oldIDs))
	for _, id := range oldIDs {
		old[id] = struct{}{}
	}

	var recipients []uuid.UUID
	for _, id := range uniqueIDs(newIDs) {
		if _, ok := old[id]; ok || id == actorID {
			continue
		}
		recipients = append(recipients, id)
	}
	return recipients
}

// CompletedRecipients returns who hears about a task reaching Done: the
// creator and every assignee, minus the actor, each at most once.
func CompletedRecipients(creatorID *uuid.UUID, assigneeIDs []uuid.UUID, actorID uuid.UUID) []uuid.UUID {
	candidates := make([]uuid.UUID, 0, len(assigneeIDs)+1)
	if creatorID != nil {
		candidates = append(candidates, *creatorID)
	}
	candidates = append(candidates, assigneeIDs...)

	var recipients []uuid.UUID
	for _, id := range uniqueIDs(candidates) {
		if id != actorID && id != uuid.Nil {
			recipients = append(recipients, id)
		}
	}
	return recipients
}

// uniqueIDs keeps the first occurrence of every id.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
