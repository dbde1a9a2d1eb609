package model

import (
	"encoding/json"
	"time"
)

// VoteSets are the voters of a post or comment. Score is derived on read.
type VoteSets struct {
	Upvotes   []string `json:"upvotes"`
	Downvotes []string `json:"downvotes"`
}

func (vs VoteSets) Score() int {
	return len(vs.Upvotes) - len(vs.Downvotes)
}

func (vs VoteSets) Has(set Set, userId string) bool {
	switch set {
	case SetUpvotes:
		return contains(vs.Upvotes, userId)
	case SetDownvotes:
		return contains(vs.Downvotes, userId)
	default:
		return false
	}
}

func (vs VoteSets) MarshalJSON() ([]byte, error) {
	upvotes, downvotes := vs.Upvotes, vs.Downvotes
	// DON'T serialize nil slices as null
	if upvotes == nil {
		upvotes = []string{}
	}
	if downvotes == nil {
		downvotes = []string{}
	}
	return json.Marshal(struct {
		Upvotes   []string `json:"upvotes"`
		Downvotes []string `json:"downvotes"`
		Score     int      `json:"score"`
	}{upvotes, downvotes, vs.Score()})
}

type Post struct {
	Id          int64            `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Author      *DisplayableUser `json:"author"`
	CommunityId int64            `json:"communityId"`
	Media       []string         `json:"media"`
	Votes       VoteSets         `json:"votes"`
	Comments    []int64          `json:"comments"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type Comment struct {
	Id          int64            `json:"id"`
	Content     string           `json:"content"`
	Author      *DisplayableUser `json:"author"`
	PostId      int64            `json:"postId"`
	ParentId    *int64           `json:"parentId"`
	Replies     []int64          `json:"replies"`
	Votes       VoteSets         `json:"votes"`
	PublishedAt time.Time        `json:"publishedAt"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (c *Comment) IsRoot() bool {
	return c.ParentId == nil
}

// ThreadNode is a comment as rendered inside its post's thread
type ThreadNode struct {
	Id       int64         `json:"id"`
	Author   string        `json:"author"`
	Content  string        `json:"content"`
	Age      string        `json:"age"`
	Score    int           `json:"score"`
	Children []*ThreadNode `json:"children,omitempty"`
}

type PostWithThread struct {
	*Post
	Thread []*ThreadNode `json:"thread"`
}
