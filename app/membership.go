package app

import "github.com/navbryce/heddit-be/model"

// PlanFounding seeds a new community's member and moderator sets with its creator
func PlanFounding(creatorId string) []model.SetChange {
	return []model.SetChange{
		model.Add(model.SetMembers, creatorId),
		model.Add(model.SetModerators, creatorId),
	}
}

// PlanJoin is a no-op for existing members
func PlanJoin(community *model.Community, userId string) []model.SetChange {
	if community.IsMember(userId) {
		return nil
	}
	return []model.SetChange{model.Add(model.SetMembers, userId)}
}

// PlanLeave drops the user from members and moderators. The creator can never leave.
func PlanLeave(community *model.Community, userId string) ([]model.SetChange, error) {
	if community.IsCreator(userId) {
		return nil, ConflictErr(CodeCreatorCannotLeave, "the creator of a community cannot leave it")
	}
	var changes []model.SetChange
	if community.IsMember(userId) {
		changes = append(changes, model.Remove(model.SetMembers, userId))
	}
	if community.IsModerator(userId) {
		changes = append(changes, model.Remove(model.SetModerators, userId))
	}
	return changes, nil
}

// PlanAddModerator makes the user a moderator, joining them first if needed
func PlanAddModerator(community *model.Community, userId string) []model.SetChange {
	changes := PlanJoin(community, userId)
	if !community.IsModerator(userId) {
		changes = append(changes, model.Add(model.SetModerators, userId))
	}
	return changes
}

func PlanRemoveModerator(community *model.Community, userId string) ([]model.SetChange, error) {
	if community.IsCreator(userId) {
		return nil, ValidationErr("the creator is always a moderator")
	}
	if !community.IsModerator(userId) {
		return nil, ValidationErr("user %v is not a moderator", userId)
	}
	return []model.SetChange{model.Remove(model.SetModerators, userId)}, nil
}

// ApplyMembershipChanges returns a copy of community with changes applied to
// its member and moderator sets.
func ApplyMembershipChanges(community *model.Community, changes []model.SetChange) *model.Community {
	updated := *community
	updated.Members = append([]string{}, community.Members...)
	updated.Moderators = append([]string{}, community.Moderators...)
	for _, change := range changes {
		switch change.Set {
		case model.SetMembers:
			updated.Members = applyChange(updated.Members, change)
		case model.SetModerators:
			updated.Moderators = applyChange(updated.Moderators, change)
		}
	}
	return &updated
}
