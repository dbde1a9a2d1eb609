package db

import (
	"context"
	"database/sql"

	"github.com/navbryce/heddit-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	Tx
	// WithTx runs fn inside one transaction. fn's error rolls everything back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	GetSQLDB() *sql.DB
	Close() error
}

// Tx is the set of store operations available inside and outside a transaction
type Tx interface {
	UserDatabase
	CommunityDatabase
	PostDatabase
	CommentDatabase
	VoteDatabase
}

type CreateCommunity struct {
	Name        string
	Slug        string
	Description string
	CreatorId   string
}

type UpdateCommunity struct {
	Name        string
	Slug        string
	Description string
}

type CreatePost struct {
	AuthorId    string
	CommunityId int64
	Title       string
	Content     string
	Media       []string
}

type UpdatePost struct {
	Title   string
	Content string
	Media   []string
}

type CreateComment struct {
	AuthorId string
	PostId   int64
	ParentId *int64
	Content  string
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser returns nil if the user does not exist
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type CommunityDatabase interface {
	CreateCommunity(ctx context.Context, req *CreateCommunity) (communityId int64, err error)
	// GetCommunityById returns nil if the community does not exist
	GetCommunityById(ctx context.Context, id int64) (*model.Community, error)
	// GetCommunityBySlug returns nil if the community does not exist
	GetCommunityBySlug(ctx context.Context, slug string) (*model.Community, error)
	GetCommunities(ctx context.Context) ([]*model.Community, error)
	UpdateCommunity(ctx context.Context, id int64, req *UpdateCommunity) error
	// DeleteCommunity removes the community row and its member sets. Posts must be removed first.
	DeleteCommunity(ctx context.Context, id int64) error
	ApplyMembershipChanges(ctx context.Context, communityId int64, changes []model.SetChange) error
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	// GetPostById returns nil if the post does not exist
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPostsForCommunity(ctx context.Context, communityId int64, limit int) ([]*model.Post, error)
	GetPostIdsForCommunity(ctx context.Context, communityId int64) ([]int64, error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	// DeletePosts removes the posts with their media and votes. Comments must be removed first.
	DeletePosts(ctx context.Context, ids []int64) error
}

type CommentDatabase interface {
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	// GetCommentById returns nil if the comment does not exist
	GetCommentById(ctx context.Context, id int64) (*model.Comment, error)
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
	GetCommentIdsForPosts(ctx context.Context, postIds []int64) ([]int64, error)
	// GetCommentSubtreeIds returns seedIds plus the ids of every comment descending from them
	GetCommentSubtreeIds(ctx context.Context, seedIds []int64) ([]int64, error)
	UpdateComment(ctx context.Context, id int64, content string) error
	// DeleteComments removes the comments and their votes
	DeleteComments(ctx context.Context, ids []int64) error
}

type VoteDatabase interface {
	GetVoteSets(ctx context.Context, target model.VoteTarget) (model.VoteSets, error)
	ApplyVoteChanges(ctx context.Context, target model.VoteTarget, changes []model.SetChange) error
}
