package app

import (
	"testing"

	"github.com/navbryce/heddit-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanVote(t *testing.T) {
	tests := []struct {
		name    string
		current model.VoteSets
		action  model.VoteAction
		want    []model.SetChange
		code    ErrorCode
	}{
		{
			name:   "upvote",
			action: model.ActionUpvote,
			want:   []model.SetChange{model.Add(model.SetUpvotes, "u1")},
		},
		{
			name:    "upvote over downvote",
			current: model.VoteSets{Downvotes: []string{"u1"}},
			action:  model.ActionUpvote,
			want: []model.SetChange{
				model.Remove(model.SetDownvotes, "u1"),
				model.Add(model.SetUpvotes, "u1"),
			},
		},
		{
			name:    "downvote over upvote",
			current: model.VoteSets{Upvotes: []string{"u1", "u2"}},
			action:  model.ActionDownvote,
			want: []model.SetChange{
				model.Remove(model.SetUpvotes, "u1"),
				model.Add(model.SetDownvotes, "u1"),
			},
		},
		{
			name:    "upvote twice",
			current: model.VoteSets{Upvotes: []string{"u1"}},
			action:  model.ActionUpvote,
			code:    CodeAlreadyVoted,
		},
		{
			name:    "downvote twice",
			current: model.VoteSets{Downvotes: []string{"u1"}},
			action:  model.ActionDownvote,
			code:    CodeAlreadyVoted,
		},
		{
			name:    "remove upvote",
			current: model.VoteSets{Upvotes: []string{"u1"}},
			action:  model.ActionRemoveUpvote,
			want:    []model.SetChange{model.Remove(model.SetUpvotes, "u1")},
		},
		{
			name:    "remove missing upvote",
			current: model.VoteSets{Downvotes: []string{"u1"}},
			action:  model.ActionRemoveUpvote,
			code:    CodeNotVoted,
		},
		{
			name:   "remove missing downvote",
			action: model.ActionRemoveDownvote,
			code:   CodeNotVoted,
		},
		{
			name:   "unknown action",
			action: model.VoteAction("sidevote"),
			code:   CodeValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := PlanVote(tt.current, "u1", tt.action)
			if tt.code != "" {
				assert.Equal(t, tt.code, CodeOf(err))
				assert.Nil(t, changes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, changes)
		})
	}
}

func TestApplySetChangesKeepsSetsDisjoint(t *testing.T) {
	current := model.VoteSets{Upvotes: []string{"u2"}, Downvotes: []string{"u1", "u3"}}
	changes, err := PlanVote(current, "u1", model.ActionUpvote)
	require.NoError(t, err)

	updated := ApplySetChanges(current, changes)
	assert.ElementsMatch(t, []string{"u1", "u2"}, updated.Upvotes)
	assert.Equal(t, []string{"u3"}, updated.Downvotes)
	assert.Equal(t, current.Score()+2, updated.Score())

	// input untouched
	assert.Equal(t, []string{"u1", "u3"}, current.Downvotes)
}

func TestVoteSetsJSON(t *testing.T) {
	data, err := model.VoteSets{Upvotes: []string{"u1"}}.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"upvotes":["u1"],"downvotes":[],"score":1}`, string(data))
}
