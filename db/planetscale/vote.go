package planetscale

import (
	"context"
	"fmt"

	"github.com/navbryce/heddit-be/model"
	"github.com/upper/db/v4"
)

type VoteDB struct {
	sess db.Session
}

func getVoteDB(sess db.Session) *VoteDB {
	return &VoteDB{sess}
}

type voteRow struct {
	TargetId int64  `db:"target_id"`
	VoterId  string `db:"voter_id"`
	Value    int8   `db:"value"`
}

func (vdb *VoteDB) GetVoteSets(ctx context.Context, target model.VoteTarget) (model.VoteSets, error) {
	sets, err := getVoteSets(ctx, vdb.sess, target.Kind, []int64{target.Id})
	if err != nil {
		return model.VoteSets{}, err
	}
	return sets[target.Id], nil
}

// ApplyVoteChanges applies the changes in order. One row per voter keeps the
// up and down sets disjoint.
func (vdb *VoteDB) ApplyVoteChanges(ctx context.Context, target model.VoteTarget, changes []model.SetChange) error {
	for _, change := range changes {
		value := change.Set.VoteValue()
		if value == 0 {
			return fmt.Errorf("%v is not a vote set", change.Set)
		}
		var err error
		switch change.Op {
		case model.Added:
			_, err = vdb.sess.SQL().ExecContext(ctx, `
INSERT INTO vote (target_kind, target_id, voter_id, value) VALUES (?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE value = VALUES(value)
`, target.Kind, target.Id, change.UserId, value)
		case model.Removed:
			_, err = vdb.sess.SQL().
				DeleteFrom("vote").
				Where("target_kind = ? AND target_id = ? AND voter_id = ? AND value = ?",
					target.Kind, target.Id, change.UserId, value).
				ExecContext(ctx)
		default:
			err = fmt.Errorf("unknown set op %v", change.Op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// getVoteSets maps target ids to their voters, oldest vote first
func getVoteSets(ctx context.Context, sess db.Session, kind model.TargetKind, targetIds []int64) (map[int64]model.VoteSets, error) {
	sets := make(map[int64]model.VoteSets, len(targetIds))
	if len(targetIds) == 0 {
		return sets, nil
	}
	var rows []voteRow
	if err := sess.SQL().
		Select("target_id", "voter_id", "value").
		From("vote").
		Where("target_kind = ? AND target_id IN ?", kind, targetIds).
		OrderBy("created_at", "voter_id").
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		set := sets[row.TargetId]
		if row.Value > 0 {
			set.Upvotes = append(set.Upvotes, row.VoterId)
		} else {
			set.Downvotes = append(set.Downvotes, row.VoterId)
		}
		sets[row.TargetId] = set
	}
	return sets, nil
}

func deleteVotesFor(ctx context.Context, sess db.Session, kind model.TargetKind, targetIds []int64) error {
	if len(targetIds) == 0 {
		return nil
	}
	_, err := sess.SQL().
		DeleteFrom("vote").
		Where("target_kind = ? AND target_id IN ?", kind, targetIds).
		ExecContext(ctx)
	return err
}
