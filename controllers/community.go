package controllers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/navbryce/heddit-be/app"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

const CommunityPostsLimit = 50

type CommunityController struct {
	db appDb.Database
}

func NewCommunityController(db appDb.Database) *CommunityController {
	return &CommunityController{db: db}
}

type CommunityReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (cc *CommunityController) CreateCommunity(ctx context.Context, actor *model.User, req *CommunityReq) (*model.Community, error) {
	name := util.SanitizePlainText(req.Name)
	slug, err := app.CommunitySlug(name)
	if err != nil {
		return nil, err
	}

	var community *model.Community
	err = cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		if err := ensureSlugAvailable(ctx, tx, slug, 0); err != nil {
			return err
		}
		id, err := tx.CreateCommunity(ctx, &appDb.CreateCommunity{
			Name:        name,
			Slug:        slug,
			Description: util.XSSSanitize(req.Description),
			CreatorId:   actor.Id,
		})
		if err != nil {
			return slugConflictOr(err, slug)
		}
		if err := tx.ApplyMembershipChanges(ctx, id, app.PlanFounding(actor.Id)); err != nil {
			return err
		}
		community, err = tx.GetCommunityById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

// GetCommunity looks a community up by numeric id or by slug
func (cc *CommunityController) GetCommunity(ctx context.Context, ref string) (*model.Community, error) {
	var community *model.Community
	var err error
	if id, parseErr := strconv.ParseInt(ref, 10, 64); parseErr == nil {
		community, err = cc.db.GetCommunityById(ctx, id)
	} else {
		community, err = cc.db.GetCommunityBySlug(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, app.NotFoundErr(app.CodeCommunityNotFound, "community %v not found", ref)
	}
	return community, nil
}

func (cc *CommunityController) GetCommunities(ctx context.Context) ([]*model.Community, error) {
	return cc.db.GetCommunities(ctx)
}

func (cc *CommunityController) GetCommunityPosts(ctx context.Context, ref string) ([]*model.Post, error) {
	community, err := cc.GetCommunity(ctx, ref)
	if err != nil {
		return nil, err
	}
	return cc.db.GetPostsForCommunity(ctx, community.Id, CommunityPostsLimit)
}

func (cc *CommunityController) UpdateCommunity(ctx context.Context, actor *model.User, id int64, req *CommunityReq) (*model.Community, error) {
	name := util.SanitizePlainText(req.Name)
	slug, err := app.CommunitySlug(name)
	if err != nil {
		return nil, err
	}

	var community *model.Community
	err = cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		existing, err := mustGetCommunity(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := app.Require(actor, app.CommunityResource(existing), app.CapEditCommunity); err != nil {
			return err
		}
		if slug != existing.Slug {
			if err := ensureSlugAvailable(ctx, tx, slug, id); err != nil {
				return err
			}
		}
		if err := tx.UpdateCommunity(ctx, id, &appDb.UpdateCommunity{
			Name:        name,
			Slug:        slug,
			Description: util.XSSSanitize(req.Description),
		}); err != nil {
			return slugConflictOr(err, slug)
		}
		community, err = tx.GetCommunityById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

// DeleteCommunity removes the community with all of its posts and their comments
func (cc *CommunityController) DeleteCommunity(ctx context.Context, actor *model.User, id int64) error {
	return cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		community, err := mustGetCommunity(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := app.Require(actor, app.CommunityResource(community), app.CapDeleteCommunity); err != nil {
			return err
		}
		postIds, err := tx.GetPostIdsForCommunity(ctx, id)
		if err != nil {
			return err
		}
		if err := deletePosts(ctx, tx, postIds); err != nil {
			return err
		}
		return tx.DeleteCommunity(ctx, id)
	})
}

func (cc *CommunityController) Join(ctx context.Context, actor *model.User, id int64) (*model.Community, error) {
	return cc.changeMembership(ctx, id, func(community *model.Community) ([]model.SetChange, error) {
		return app.PlanJoin(community, actor.Id), nil
	})
}

func (cc *CommunityController) Leave(ctx context.Context, actor *model.User, id int64) (*model.Community, error) {
	return cc.changeMembership(ctx, id, func(community *model.Community) ([]model.SetChange, error) {
		return app.PlanLeave(community, actor.Id)
	})
}

func (cc *CommunityController) AddModerator(ctx context.Context, actor *model.User, id int64, userId string) (*model.Community, error) {
	return cc.changeModerators(ctx, actor, id, userId, func(community *model.Community) ([]model.SetChange, error) {
		return app.PlanAddModerator(community, userId), nil
	})
}

func (cc *CommunityController) RemoveModerator(ctx context.Context, actor *model.User, id int64, userId string) (*model.Community, error) {
	return cc.changeModerators(ctx, actor, id, userId, func(community *model.Community) ([]model.SetChange, error) {
		return app.PlanRemoveModerator(community, userId)
	})
}

type membershipPlanner func(community *model.Community) ([]model.SetChange, error)

func (cc *CommunityController) changeModerators(ctx context.Context, actor *model.User, id int64, userId string, plan membershipPlanner) (*model.Community, error) {
	return cc.changeMembership(ctx, id, func(community *model.Community) ([]model.SetChange, error) {
		if err := app.Require(actor, app.CommunityResource(community), app.CapManageModerators); err != nil {
			return nil, err
		}
		return plan(community)
	}, func(tx appDb.Tx) error {
		user, err := tx.GetUser(ctx, userId)
		if err != nil {
			return err
		}
		if user == nil {
			return app.NotFoundErr(app.CodeUserNotFound, "user %v not found", userId)
		}
		return nil
	})
}

func (cc *CommunityController) changeMembership(ctx context.Context, id int64, plan membershipPlanner, checks ...func(tx appDb.Tx) error) (*model.Community, error) {
	var updated *model.Community
	err := cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		community, err := mustGetCommunity(ctx, tx, id)
		if err != nil {
			return err
		}
		changes, err := plan(community)
		if err != nil {
			return err
		}
		for _, check := range checks {
			if err := check(tx); err != nil {
				return err
			}
		}
		if err := tx.ApplyMembershipChanges(ctx, id, changes); err != nil {
			return err
		}
		updated = app.ApplyMembershipChanges(community, changes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func mustGetCommunity(ctx context.Context, tx appDb.Tx, id int64) (*model.Community, error) {
	community, err := tx.GetCommunityById(ctx, id)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, app.NotFoundErr(app.CodeCommunityNotFound, "community %v not found", id)
	}
	return community, nil
}

// ensureSlugAvailable fails unless slug is free or already belongs to community ownId
func ensureSlugAvailable(ctx context.Context, tx appDb.Tx, slug string, ownId int64) error {
	existing, err := tx.GetCommunityBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.Id != ownId {
		return app.ValidationErr("a community with the slug %q already exists", slug)
	}
	return nil
}

// slugConflictOr maps a unique violation that slipped past ensureSlugAvailable
func slugConflictOr(err error, slug string) error {
	if appDb.IsDupKeyErr(err) {
		return app.ValidationErr("a community with the slug %q already exists", slug)
	}
	return fmt.Errorf("error writing community: %w", err)
}
