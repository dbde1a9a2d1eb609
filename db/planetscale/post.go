package planetscale

import (
	"context"
	"errors"
	"time"

	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

type flattenedPost struct {
	Id                int64     `db:"id"`
	Title             string    `db:"title"`
	Content           string    `db:"content"`
	AuthorId          string    `db:"author_id"`
	AuthorDisplayName string    `db:"username"`
	CommunityId       int64     `db:"community_id"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

var postColumns = []interface{}{
	"p.id",
	"p.title",
	"p.content",
	"p.author_id",
	"person.username",
	"p.community_id",
	"p.created_at",
	"p.updated_at",
}

type mediaRow struct {
	PostId   int64  `db:"post_id"`
	BlobName string `db:"blob_name"`
}

type commentIdRow struct {
	Id     int64 `db:"id"`
	PostId int64 `db:"post_id"`
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("title", "content", "author_id", "community_id").
		Values(req.Title, req.Content, req.AuthorId, req.CommunityId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	postId, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return postId, insertMedia(ctx, pdb.sess, postId, req.Media)
}

func insertMedia(ctx context.Context, sess db.Session, postId int64, media []string) error {
	if len(media) == 0 {
		return nil
	}
	batchInserter := sess.SQL().
		InsertInto("post_media").
		Columns("post_id", "position", "blob_name").
		Batch(len(media))
	for i, blobName := range media {
		batchInserter.Values(postId, i, blobName)
	}
	batchInserter.Done()
	return batchInserter.Wait()
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if errors.Is(err, db.ErrNoMoreRows) {
			return nil, nil
		}
		return nil, err
	}
	posts, err := pdb.hydrate(ctx, []flattenedPost{post})
	if err != nil {
		return nil, err
	}
	return posts[0], nil
}

func (pdb *PostDB) GetPostsForCommunity(ctx context.Context, communityId int64, limit int) ([]*model.Post, error) {
	var flattenedPosts []flattenedPost
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		Where("p.community_id = ?", communityId).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(limit).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	return pdb.hydrate(ctx, flattenedPosts)
}

func (pdb *PostDB) GetPostIdsForCommunity(ctx context.Context, communityId int64) ([]int64, error) {
	var rows []struct {
		Id int64 `db:"id"`
	}
	if err := pdb.sess.SQL().
		Select("id").
		From("post").
		Where("community_id = ?", communityId).
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.Id
	}
	return ids, nil
}

// hydrate attaches media, votes and comment ids
func (pdb *PostDB) hydrate(ctx context.Context, flattenedPosts []flattenedPost) ([]*model.Post, error) {
	posts := make([]*model.Post, len(flattenedPosts))
	if len(flattenedPosts) == 0 {
		return posts, nil
	}
	ids := make([]int64, len(flattenedPosts))
	for i, p := range flattenedPosts {
		ids[i] = p.Id
	}

	var media []mediaRow
	if err := pdb.sess.SQL().
		Select("post_id", "blob_name").
		From("post_media").
		Where("post_id IN ?", ids).
		OrderBy("post_id", "position").
		IteratorContext(ctx).
		All(&media); err != nil {
		return nil, err
	}
	mediaByPost := make(map[int64][]string)
	for _, row := range media {
		mediaByPost[row.PostId] = append(mediaByPost[row.PostId], row.BlobName)
	}

	var comments []commentIdRow
	if err := pdb.sess.SQL().
		Select("id", "post_id").
		From("comment").
		Where("post_id IN ?", ids).
		OrderBy("id").
		IteratorContext(ctx).
		All(&comments); err != nil {
		return nil, err
	}
	commentsByPost := make(map[int64][]int64)
	for _, row := range comments {
		commentsByPost[row.PostId] = append(commentsByPost[row.PostId], row.Id)
	}

	votes, err := getVoteSets(ctx, pdb.sess, model.TargetPost, ids)
	if err != nil {
		return nil, err
	}

	for i, p := range flattenedPosts {
		posts[i] = &model.Post{
			Id:          p.Id,
			Title:       p.Title,
			Content:     p.Content,
			Author:      displayableUser(p.AuthorId, p.AuthorDisplayName),
			CommunityId: p.CommunityId,
			Media:       nonNil(mediaByPost[p.Id]),
			Votes:       votes[p.Id],
			Comments:    nonNilIds(commentsByPost[p.Id]),
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
	}
	return posts, nil
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	if _, err := pdb.sess.SQL().
		Update("post").
		Set("title", req.Title, "content", req.Content).
		Where("id = ?", id).
		ExecContext(ctx); err != nil {
		return err
	}
	if _, err := pdb.sess.SQL().
		DeleteFrom("post_media").
		Where("post_id = ?", id).
		ExecContext(ctx); err != nil {
		return err
	}
	return insertMedia(ctx, pdb.sess, id, req.Media)
}

func (pdb *PostDB) DeletePosts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := deleteVotesFor(ctx, pdb.sess, model.TargetPost, ids); err != nil {
		return err
	}
	if _, err := pdb.sess.SQL().
		DeleteFrom("post_media").
		Where("post_id IN ?", ids).
		ExecContext(ctx); err != nil {
		return err
	}
	_, err := pdb.sess.SQL().
		DeleteFrom("post").
		Where("id IN ?", ids).
		ExecContext(ctx)
	return err
}

func nonNilIds(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
