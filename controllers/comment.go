package controllers

import (
	"context"

	"github.com/navbryce/heddit-be/app"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

type CommentController struct {
	db appDb.Database
}

func NewCommentController(db appDb.Database) *CommentController {
	return &CommentController{db: db}
}

type CreateCommentReq struct {
	Content string `json:"content"`
	Post    *int64 `json:"post"`
	Parent  *int64 `json:"parent"`
}

type UpdateCommentReq struct {
	Content string `json:"content"`
}

// CreateComment checks the post and parent and inserts the comment in one transaction
func (cc *CommentController) CreateComment(ctx context.Context, actor *model.User, req *CreateCommentReq) (*model.Comment, error) {
	content := util.XSSSanitize(req.Content)
	if err := app.ValidateContent(content); err != nil {
		return nil, err
	}
	if req.Post == nil {
		return nil, app.ValidationErr("post is required")
	}

	var comment *model.Comment
	err := cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		post, err := tx.GetPostById(ctx, *req.Post)
		if err != nil {
			return err
		}
		if post == nil {
			return app.NotFoundErr(app.CodePostNotFound, "post %v not found", *req.Post)
		}
		if req.Parent != nil {
			parent, err := tx.GetCommentById(ctx, *req.Parent)
			if err != nil {
				return err
			}
			if parent == nil {
				return app.NotFoundErr(app.CodeParentNotFound, "parent comment %v not found", *req.Parent)
			}
			if parent.PostId != post.Id {
				return app.ValidationErr("parent comment %v belongs to another post", parent.Id)
			}
		}
		id, err := tx.CreateComment(ctx, &appDb.CreateComment{
			AuthorId: actor.Id,
			PostId:   post.Id,
			ParentId: req.Parent,
			Content:  content,
		})
		if err != nil {
			return err
		}
		comment, err = tx.GetCommentById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (cc *CommentController) UpdateComment(ctx context.Context, actor *model.User, id int64, req *UpdateCommentReq) (*model.Comment, error) {
	content := util.XSSSanitize(req.Content)
	if err := app.ValidateContent(content); err != nil {
		return nil, err
	}
	var comment *model.Comment
	err := cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		existing, err := mustGetComment(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := app.Require(actor, app.ContentResource(nil, existing.Author.Id), app.CapEditContent); err != nil {
			return err
		}
		if err := tx.UpdateComment(ctx, id, content); err != nil {
			return err
		}
		comment, err = tx.GetCommentById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment and its whole reply subtree. Returns the
// number of comments removed.
func (cc *CommentController) DeleteComment(ctx context.Context, actor *model.User, id int64) (int, error) {
	var deleted int
	err := cc.db.WithTx(ctx, func(tx appDb.Tx) error {
		comment, err := mustGetComment(ctx, tx, id)
		if err != nil {
			return err
		}
		post, err := mustGetPost(ctx, tx, comment.PostId)
		if err != nil {
			return err
		}
		community, err := tx.GetCommunityById(ctx, post.CommunityId)
		if err != nil {
			return err
		}
		if err := app.Require(actor, app.ContentResource(community, comment.Author.Id), app.CapDeleteContent); err != nil {
			return err
		}
		deleted, err = deleteCommentSubtrees(ctx, tx, []int64{id})
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func mustGetComment(ctx context.Context, tx appDb.Tx, id int64) (*model.Comment, error) {
	comment, err := tx.GetCommentById(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, app.NotFoundErr(app.CodeCommentNotFound, "comment %v not found", id)
	}
	return comment, nil
}
