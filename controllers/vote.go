package controllers

import (
	"context"

	"github.com/navbryce/heddit-be/app"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
)

// VoteController serves the vote endpoints of both posts and comments
type VoteController struct {
	db appDb.Database
}

func NewVoteController(db appDb.Database) *VoteController {
	return &VoteController{db: db}
}

// Vote applies action for actor and returns the target's new voter sets
func (vc *VoteController) Vote(ctx context.Context, actor *model.User, target model.VoteTarget, action model.VoteAction) (model.VoteSets, error) {
	var updated model.VoteSets
	err := vc.db.WithTx(ctx, func(tx appDb.Tx) error {
		current, err := currentVotes(ctx, tx, target)
		if err != nil {
			return err
		}
		changes, err := app.PlanVote(current, actor.Id, action)
		if err != nil {
			return err
		}
		if err := tx.ApplyVoteChanges(ctx, target, changes); err != nil {
			return err
		}
		updated = app.ApplySetChanges(current, changes)
		return nil
	})
	if err != nil {
		return model.VoteSets{}, err
	}
	return updated, nil
}

func currentVotes(ctx context.Context, tx appDb.Tx, target model.VoteTarget) (model.VoteSets, error) {
	switch target.Kind {
	case model.TargetPost:
		if _, err := mustGetPost(ctx, tx, target.Id); err != nil {
			return model.VoteSets{}, err
		}
	case model.TargetComment:
		if _, err := mustGetComment(ctx, tx, target.Id); err != nil {
			return model.VoteSets{}, err
		}
	default:
		return model.VoteSets{}, app.ValidationErr("unknown vote target %v", target.Kind)
	}
	return tx.GetVoteSets(ctx, target)
}
