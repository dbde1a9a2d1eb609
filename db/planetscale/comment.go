package planetscale

import (
	"context"
	"errors"
	"time"

	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/db/dao"
	"github.com/navbryce/heddit-be/model"
	"github.com/upper/db/v4"
)

type CommentDB struct {
	sess db.Session
}

func getCommentDB(sess db.Session) *CommentDB {
	return &CommentDB{sess}
}

type flattenedComment struct {
	Id                int64         `db:"id"`
	Content           string        `db:"content"`
	AuthorId          string        `db:"author_id"`
	AuthorDisplayName string        `db:"username"`
	PostId            int64         `db:"post_id"`
	ParentId          dao.NullInt64 `db:"parent_id"`
	PublishedAt       time.Time     `db:"published_at"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

var commentColumns = []interface{}{
	"c.id",
	"c.content",
	"c.author_id",
	"person.username",
	"c.post_id",
	"c.parent_id",
	"c.published_at",
	"c.created_at",
	"c.updated_at",
}

type replyRow struct {
	Id       int64 `db:"id"`
	ParentId int64 `db:"parent_id"`
}

func (cdb *CommentDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("comment").
		Columns("content", "author_id", "post_id", "parent_id", "published_at").
		Values(req.Content, req.AuthorId, req.PostId, dao.NullInt64From(req.ParentId).NullInt64, time.Now().UTC()).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (cdb *CommentDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	var comment flattenedComment
	if err := cdb.sess.SQL().
		Select(commentColumns...).
		From("comment as c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if errors.Is(err, db.ErrNoMoreRows) {
			return nil, nil
		}
		return nil, err
	}
	comments, err := cdb.hydrate(ctx, []flattenedComment{comment})
	if err != nil {
		return nil, err
	}
	return comments[0], nil
}

func (cdb *CommentDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := cdb.sess.SQL().
		Select(commentColumns...).
		From("comment as c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.published_at", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	return cdb.hydrate(ctx, flattenedComments)
}

// hydrate attaches reply ids and votes
func (cdb *CommentDB) hydrate(ctx context.Context, flattenedComments []flattenedComment) ([]*model.Comment, error) {
	comments := make([]*model.Comment, len(flattenedComments))
	if len(flattenedComments) == 0 {
		return comments, nil
	}
	ids := make([]int64, len(flattenedComments))
	for i, c := range flattenedComments {
		ids[i] = c.Id
	}

	var replies []replyRow
	if err := cdb.sess.SQL().
		Select("id", "parent_id").
		From("comment").
		Where("parent_id IN ?", ids).
		OrderBy("published_at", "id").
		IteratorContext(ctx).
		All(&replies); err != nil {
		return nil, err
	}
	repliesByParent := make(map[int64][]int64)
	for _, reply := range replies {
		repliesByParent[reply.ParentId] = append(repliesByParent[reply.ParentId], reply.Id)
	}

	votes, err := getVoteSets(ctx, cdb.sess, model.TargetComment, ids)
	if err != nil {
		return nil, err
	}

	for i, c := range flattenedComments {
		comments[i] = &model.Comment{
			Id:          c.Id,
			Content:     c.Content,
			Author:      displayableUser(c.AuthorId, c.AuthorDisplayName),
			PostId:      c.PostId,
			ParentId:    c.ParentId.Ptr(),
			Replies:     nonNilIds(repliesByParent[c.Id]),
			Votes:       votes[c.Id],
			PublishedAt: c.PublishedAt,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}
	}
	return comments, nil
}

func (cdb *CommentDB) GetCommentIdsForPosts(ctx context.Context, postIds []int64) ([]int64, error) {
	if len(postIds) == 0 {
		return []int64{}, nil
	}
	var rows []commentIdRow
	if err := cdb.sess.SQL().
		Select("id", "post_id").
		From("comment").
		Where("post_id IN ?", postIds).
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

// GetCommentSubtreeIds walks parent links with one recursive query. UNION
// (not UNION ALL) drops revisited ids, so a malformed cycle still terminates.
func (cdb *CommentDB) GetCommentSubtreeIds(ctx context.Context, seedIds []int64) ([]int64, error) {
	if len(seedIds) == 0 {
		return []int64{}, nil
	}
	in, args := inClause(seedIds)
	rows, err := cdb.sess.SQL().QueryContext(ctx, `
WITH RECURSIVE subtree (id) AS (
	SELECT id FROM comment WHERE id IN `+in+`
	UNION
	SELECT c.id FROM comment AS c INNER JOIN subtree AS s ON c.parent_id = s.id
)
SELECT id FROM subtree
`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (cdb *CommentDB) UpdateComment(ctx context.Context, id int64, content string) error {
	_, err := cdb.sess.SQL().
		Update("comment").
		Set("content", content).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (cdb *CommentDB) DeleteComments(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := deleteVotesFor(ctx, cdb.sess, model.TargetComment, ids); err != nil {
		return err
	}
	_, err := cdb.sess.SQL().
		DeleteFrom("comment").
		Where("id IN ?", ids).
		ExecContext(ctx)
	return err
}
