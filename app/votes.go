package app

import "github.com/navbryce/heddit-be/model"

// PlanVote returns the set changes that apply action for userId against the
// current voters. Votes are not idempotent: repeating a vote or removing a
// vote that was never cast is a conflict.
func PlanVote(current model.VoteSets, userId string, action model.VoteAction) ([]model.SetChange, error) {
	switch action {
	case model.ActionUpvote:
		return planCast(current, userId, model.SetUpvotes, model.SetDownvotes)
	case model.ActionDownvote:
		return planCast(current, userId, model.SetDownvotes, model.SetUpvotes)
	case model.ActionRemoveUpvote:
		return planRetract(current, userId, model.SetUpvotes)
	case model.ActionRemoveDownvote:
		return planRetract(current, userId, model.SetDownvotes)
	default:
		return nil, ValidationErr("unknown vote action %q", action)
	}
}

func planCast(current model.VoteSets, userId string, set, opposite model.Set) ([]model.SetChange, error) {
	if current.Has(set, userId) {
		return nil, ConflictErr(CodeAlreadyVoted, "already voted")
	}
	var changes []model.SetChange
	if current.Has(opposite, userId) {
		changes = append(changes, model.Remove(opposite, userId))
	}
	return append(changes, model.Add(set, userId)), nil
}

func planRetract(current model.VoteSets, userId string, set model.Set) ([]model.SetChange, error) {
	if !current.Has(set, userId) {
		return nil, ConflictErr(CodeNotVoted, "not voted")
	}
	return []model.SetChange{model.Remove(set, userId)}, nil
}

// ApplySetChanges returns a copy of sets with changes applied. Used to report
// the new state without re-reading it.
func ApplySetChanges(sets model.VoteSets, changes []model.SetChange) model.VoteSets {
	result := model.VoteSets{
		Upvotes:   append([]string{}, sets.Upvotes...),
		Downvotes: append([]string{}, sets.Downvotes...),
	}
	for _, change := range changes {
		var target *[]string
		switch change.Set {
		case model.SetUpvotes:
			target = &result.Upvotes
		case model.SetDownvotes:
			target = &result.Downvotes
		default:
			continue
		}
		*target = applyChange(*target, change)
	}
	return result
}

func applyChange(ids []string, change model.SetChange) []string {
	filtered := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id != change.UserId {
			filtered = append(filtered, id)
		}
	}
	if change.Op == model.Added {
		filtered = append(filtered, change.UserId)
	}
	return filtered
}
