package controllers

import (
	"context"
	"time"

	"github.com/navbryce/heddit-be/app"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

// MediaStore answers whether an uploaded blob exists
type MediaStore interface {
	Exists(ctx context.Context, blobName string) (bool, error)
}

type PostController struct {
	db    appDb.Database
	media MediaStore
	now   func() time.Time
}

// NewPostController creates a post controller. A nil media store skips media existence checks.
func NewPostController(db appDb.Database, media MediaStore) *PostController {
	return &PostController{
		db:    db,
		media: media,
		now:   time.Now,
	}
}

type CreatePostReq struct {
	Community int64    `json:"community"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Media     []string `json:"media"`
}

type UpdatePostReq struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Media   []string `json:"media"`
}

func (pc *PostController) CreatePost(ctx context.Context, actor *model.User, req *CreatePostReq) (*model.Post, error) {
	title, content, err := pc.validatePost(ctx, req.Title, req.Content, req.Media)
	if err != nil {
		return nil, err
	}

	var post *model.Post
	err = pc.db.WithTx(ctx, func(tx appDb.Tx) error {
		community, err := tx.GetCommunityById(ctx, req.Community)
		if err != nil {
			return err
		}
		if community == nil {
			return app.NotFoundErr(app.CodeCommunityNotFound, "community %v not found", req.Community)
		}
		if err := app.Require(actor, app.CommunityResource(community), app.CapPost); err != nil {
			return err
		}
		id, err := tx.CreatePost(ctx, &appDb.CreatePost{
			AuthorId:    actor.Id,
			CommunityId: community.Id,
			Title:       title,
			Content:     content,
			Media:       req.Media,
		})
		if err != nil {
			return err
		}
		post, err = tx.GetPostById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post together with its assembled comment thread
func (pc *PostController) GetPost(ctx context.Context, id int64) (*model.PostWithThread, error) {
	post, err := mustGetPost(ctx, pc.db, id)
	if err != nil {
		return nil, err
	}
	comments, err := pc.db.GetCommentsForPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.PostWithThread{
		Post:   post,
		Thread: app.BuildThread(comments, pc.now()),
	}, nil
}

func (pc *PostController) UpdatePost(ctx context.Context, actor *model.User, id int64, req *UpdatePostReq) (*model.Post, error) {
	title, content, err := pc.validatePost(ctx, req.Title, req.Content, req.Media)
	if err != nil {
		return nil, err
	}
	var post *model.Post
	err = pc.db.WithTx(ctx, func(tx appDb.Tx) error {
		existing, err := mustGetPost(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := app.Require(actor, app.ContentResource(nil, existing.Author.Id), app.CapEditContent); err != nil {
			return err
		}
		if err := tx.UpdatePost(ctx, id, &appDb.UpdatePost{
			Title:   title,
			Content: content,
			Media:   req.Media,
		}); err != nil {
			return err
		}
		post, err = tx.GetPostById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and every comment under it. Allowed for the
// author and the community's moderators.
func (pc *PostController) DeletePost(ctx context.Context, actor *model.User, id int64) error {
	return pc.db.WithTx(ctx, func(tx appDb.Tx) error {
		post, err := mustGetPost(ctx, tx, id)
		if err != nil {
			return err
		}
		community, err := tx.GetCommunityById(ctx, post.CommunityId)
		if err != nil {
			return err
		}
		if err := app.Require(actor, app.ContentResource(community, post.Author.Id), app.CapDeleteContent); err != nil {
			return err
		}
		return deletePosts(ctx, tx, []int64{id})
	})
}

func (pc *PostController) validatePost(ctx context.Context, rawTitle, rawContent string, media []string) (title, content string, err error) {
	title = util.SanitizePlainText(rawTitle)
	if err := app.ValidateTitle(title); err != nil {
		return "", "", err
	}
	content = util.XSSSanitize(rawContent)
	if len(media) == 0 {
		if err := app.ValidateContent(content); err != nil {
			return "", "", err
		}
	}
	if err := app.ValidateMedia(media); err != nil {
		return "", "", err
	}
	if err := pc.ensureMediaExists(ctx, media); err != nil {
		return "", "", err
	}
	return title, content, nil
}

func (pc *PostController) ensureMediaExists(ctx context.Context, media []string) error {
	if pc.media == nil {
		return nil
	}
	for _, blobName := range media {
		exists, err := pc.media.Exists(ctx, blobName)
		if err != nil {
			return err
		}
		if !exists {
			return app.ValidationErr("media %q does not exist", blobName)
		}
	}
	return nil
}

func mustGetPost(ctx context.Context, tx appDb.Tx, id int64) (*model.Post, error) {
	post, err := tx.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, app.NotFoundErr(app.CodePostNotFound, "post %v not found", id)
	}
	return post, nil
}
