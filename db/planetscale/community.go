package planetscale

import (
	"context"
	"errors"
	"time"

	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
	"github.com/upper/db/v4"
)

type CommunityDB struct {
	sess db.Session
}

func getCommunityDB(sess db.Session) *CommunityDB {
	return &CommunityDB{sess}
}

type flattenedCommunity struct {
	Id                 int64     `db:"id"`
	Name               string    `db:"name"`
	Slug               string    `db:"slug"`
	Description        string    `db:"description"`
	CreatorId          string    `db:"creator_id"`
	CreatorDisplayName string    `db:"username"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

var communityColumns = []interface{}{
	"c.id",
	"c.name",
	"c.slug",
	"c.description",
	"c.creator_id",
	"person.username",
	"c.created_at",
	"c.updated_at",
}

func (cdb *CommunityDB) CreateCommunity(ctx context.Context, req *appDb.CreateCommunity) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("community").
		Columns("name", "slug", "description", "creator_id").
		Values(req.Name, req.Slug, req.Description, req.CreatorId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (cdb *CommunityDB) GetCommunityById(ctx context.Context, id int64) (*model.Community, error) {
	return cdb.getCommunityWhere(ctx, "c.id = ?", id)
}

func (cdb *CommunityDB) GetCommunityBySlug(ctx context.Context, slug string) (*model.Community, error) {
	return cdb.getCommunityWhere(ctx, "c.slug = ?", slug)
}

func (cdb *CommunityDB) getCommunityWhere(ctx context.Context, where ...interface{}) (*model.Community, error) {
	var flattened flattenedCommunity
	if err := cdb.sess.SQL().
		Select(communityColumns...).
		From("community as c").
		Join("person").On("c.creator_id = person.firebase_id").
		Where(where...).
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if errors.Is(err, db.ErrNoMoreRows) {
			return nil, nil
		}
		return nil, err
	}
	communities, err := cdb.hydrate(ctx, []flattenedCommunity{flattened})
	if err != nil {
		return nil, err
	}
	return communities[0], nil
}

func (cdb *CommunityDB) GetCommunities(ctx context.Context) ([]*model.Community, error) {
	var flattened []flattenedCommunity
	if err := cdb.sess.SQL().
		Select(communityColumns...).
		From("community as c").
		Join("person").On("c.creator_id = person.firebase_id").
		OrderBy("c.name").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	return cdb.hydrate(ctx, flattened)
}

// hydrate attaches member and moderator sets and post ids
func (cdb *CommunityDB) hydrate(ctx context.Context, flattened []flattenedCommunity) ([]*model.Community, error) {
	communities := make([]*model.Community, len(flattened))
	if len(flattened) == 0 {
		return communities, nil
	}
	ids := make([]int64, len(flattened))
	for i, f := range flattened {
		ids[i] = f.Id
	}
	members, err := getSetMembers(ctx, cdb.sess, membershipTables[model.SetMembers], ids)
	if err != nil {
		return nil, err
	}
	moderators, err := getSetMembers(ctx, cdb.sess, membershipTables[model.SetModerators], ids)
	if err != nil {
		return nil, err
	}
	var postRows []struct {
		Id          int64 `db:"id"`
		CommunityId int64 `db:"community_id"`
	}
	if err := cdb.sess.SQL().
		Select("id", "community_id").
		From("post").
		Where("community_id IN ?", ids).
		OrderBy("id").
		IteratorContext(ctx).
		All(&postRows); err != nil {
		return nil, err
	}
	postsByCommunity := make(map[int64][]int64)
	for _, row := range postRows {
		postsByCommunity[row.CommunityId] = append(postsByCommunity[row.CommunityId], row.Id)
	}
	for i, f := range flattened {
		communities[i] = &model.Community{
			Id:          f.Id,
			Name:        f.Name,
			Slug:        f.Slug,
			Description: f.Description,
			Creator:     displayableUser(f.CreatorId, f.CreatorDisplayName),
			Members:     nonNil(members[f.Id]),
			Moderators:  nonNil(moderators[f.Id]),
			Posts:       nonNilIds(postsByCommunity[f.Id]),
			CreatedAt:   f.CreatedAt,
			UpdatedAt:   f.UpdatedAt,
		}
	}
	return communities, nil
}

func (cdb *CommunityDB) UpdateCommunity(ctx context.Context, id int64, req *appDb.UpdateCommunity) error {
	_, err := cdb.sess.SQL().
		Update("community").
		Set("name", req.Name, "slug", req.Slug, "description", req.Description).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (cdb *CommunityDB) DeleteCommunity(ctx context.Context, id int64) error {
	for _, table := range []string{membershipTables[model.SetMembers], membershipTables[model.SetModerators]} {
		if _, err := cdb.sess.SQL().
			DeleteFrom(table).
			Where("community_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
	}
	_, err := cdb.sess.SQL().
		DeleteFrom("community").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
