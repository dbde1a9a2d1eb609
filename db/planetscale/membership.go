package planetscale

import (
	"context"
	"fmt"

	"github.com/navbryce/heddit-be/model"
	"github.com/upper/db/v4"
)

var membershipTables = map[model.Set]string{
	model.SetMembers:    "community_member",
	model.SetModerators: "community_moderator",
}

type setMemberRow struct {
	CommunityId int64  `db:"community_id"`
	UserId      string `db:"user_id"`
}

func (cdb *CommunityDB) ApplyMembershipChanges(ctx context.Context, communityId int64, changes []model.SetChange) error {
	for _, change := range changes {
		table, ok := membershipTables[change.Set]
		if !ok {
			return fmt.Errorf("%v is not a membership set", change.Set)
		}
		var err error
		switch change.Op {
		case model.Added:
			_, err = cdb.sess.SQL().ExecContext(ctx,
				fmt.Sprintf("INSERT IGNORE INTO %s (community_id, user_id) VALUES (?, ?)", table),
				communityId, change.UserId)
		case model.Removed:
			_, err = cdb.sess.SQL().
				DeleteFrom(table).
				Where("community_id = ? AND user_id = ?", communityId, change.UserId).
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

// getSetMembers maps community ids to the user ids in table, oldest first
func getSetMembers(ctx context.Context, sess db.Session, table string, communityIds []int64) (map[int64][]string, error) {
	var rows []setMemberRow
	if err := sess.SQL().
		Select("community_id", "user_id").
		From(table).
		Where("community_id IN ?", communityIds).
		OrderBy("created_at", "user_id").
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	byCommunity := make(map[int64][]string)
	for _, row := range rows {
		byCommunity[row.CommunityId] = append(byCommunity[row.CommunityId], row.UserId)
	}
	return byCommunity, nil
}
