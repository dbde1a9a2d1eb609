package app

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/navbryce/heddit-be/model"
)

// BuildThread assembles a flat snapshot of a post's comments into a forest.
// Comments without a parent, or whose parent is not in the snapshot, are
// roots; every other comment hangs off its parent's reply list. The snapshot
// is not modified.
func BuildThread(comments []*model.Comment, now time.Time) []*model.ThreadNode {
	byId := make(map[int64]*model.Comment, len(comments))
	for _, comment := range comments {
		byId[comment.Id] = comment
	}

	visited := make(map[int64]bool, len(comments))
	forest := []*model.ThreadNode{} // DON'T return nil slice
	for _, comment := range comments {
		if !isThreadRoot(comment, byId) {
			continue
		}
		if node := buildNode(comment, byId, visited, now); node != nil {
			forest = append(forest, node)
		}
	}
	return forest
}

func isThreadRoot(comment *model.Comment, byId map[int64]*model.Comment) bool {
	if comment.ParentId == nil {
		return true
	}
	_, hasParent := byId[*comment.ParentId]
	return !hasParent
}

func buildNode(comment *model.Comment, byId map[int64]*model.Comment, visited map[int64]bool, now time.Time) *model.ThreadNode {
	if visited[comment.Id] {
		return nil
	}
	visited[comment.Id] = true

	node := &model.ThreadNode{
		Id:      comment.Id,
		Author:  authorName(comment.Author),
		Content: comment.Content,
		Age:     humanize.RelTime(comment.PublishedAt, now, "ago", "from now"),
		Score:   comment.Votes.Score(),
	}
	for _, replyId := range comment.Replies {
		reply, ok := byId[replyId]
		if !ok {
			continue
		}
		if child := buildNode(reply, byId, visited, now); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func authorName(author *model.DisplayableUser) string {
	if author == nil {
		return "[deleted]"
	}
	return author.Username
}
