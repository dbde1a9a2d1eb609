package controllers

import (
	"context"
	"testing"

	"github.com/navbryce/heddit-be/model"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db          *memDB
	communities *CommunityController
	posts       *PostController
	comments    *CommentController
	votes       *VoteController
	users       *UserController
}

func newFixture() *fixture {
	db := newMemDB()
	return &fixture{
		db:          db,
		communities: NewCommunityController(db),
		posts:       NewPostController(db, nil),
		comments:    NewCommentController(db),
		votes:       NewVoteController(db),
		users:       NewUserController(db),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), "uid-"+username, username)
	require.NoError(t, err)
	return user
}

func (f *fixture) community(t *testing.T, creator *model.User, name string) *model.Community {
	t.Helper()
	community, err := f.communities.CreateCommunity(context.Background(), creator, &CommunityReq{Name: name})
	require.NoError(t, err)
	return community
}

func (f *fixture) post(t *testing.T, author *model.User, communityId int64) *model.Post {
	t.Helper()
	post, err := f.posts.CreatePost(context.Background(), author, &CreatePostReq{
		Community: communityId,
		Title:     "a title",
		Content:   "some content",
	})
	require.NoError(t, err)
	return post
}

func (f *fixture) comment(t *testing.T, author *model.User, postId int64, parentId *int64) *model.Comment {
	t.Helper()
	comment, err := f.comments.CreateComment(context.Background(), author, &CreateCommentReq{
		Content: "a comment",
		Post:    &postId,
		Parent:  parentId,
	})
	require.NoError(t, err)
	return comment
}

func ptr(id int64) *int64 {
	return &id
}
