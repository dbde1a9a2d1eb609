package model

// Set names a user-id set field of a post, comment or community
type Set string

const (
	SetUpvotes    Set = "UPVOTES"
	SetDownvotes  Set = "DOWNVOTES"
	SetMembers    Set = "MEMBERS"
	SetModerators Set = "MODERATORS"
)

// VoteValue is the value persisted for a vote in the given set
func (s Set) VoteValue() int8 {
	switch s {
	case SetUpvotes:
		return 1
	case SetDownvotes:
		return -1
	default:
		return 0
	}
}

type SetOp string

const (
	Added   SetOp = "ADDED"
	Removed SetOp = "REMOVED"
)

// SetChange is either Added(user) or Removed(user) for one set
type SetChange struct {
	Op     SetOp
	Set    Set
	UserId string
}

func Add(set Set, userId string) SetChange {
	return SetChange{Op: Added, Set: set, UserId: userId}
}

func Remove(set Set, userId string) SetChange {
	return SetChange{Op: Removed, Set: set, UserId: userId}
}

type TargetKind string

const (
	TargetPost    TargetKind = "POST"
	TargetComment TargetKind = "COMMENT"
)

type VoteTarget struct {
	Kind TargetKind
	Id   int64
}

type VoteAction string

const (
	ActionUpvote         VoteAction = "upvote"
	ActionDownvote       VoteAction = "downvote"
	ActionRemoveUpvote   VoteAction = "remove-upvote"
	ActionRemoveDownvote VoteAction = "remove-downvote"
)

