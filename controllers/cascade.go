package controllers

import (
	"context"

	appDb "github.com/navbryce/heddit-be/db"
)

// deleteCommentSubtrees removes the seed comments and all their descendants.
// Returns the number of comments removed.
func deleteCommentSubtrees(ctx context.Context, tx appDb.Tx, seedIds []int64) (int, error) {
	if len(seedIds) == 0 {
		return 0, nil
	}
	ids, err := tx.GetCommentSubtreeIds(ctx, seedIds)
	if err != nil {
		return 0, err
	}
	if err := tx.DeleteComments(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// deletePosts removes the posts after removing every comment under them
func deletePosts(ctx context.Context, tx appDb.Tx, postIds []int64) error {
	if len(postIds) == 0 {
		return nil
	}
	commentIds, err := tx.GetCommentIdsForPosts(ctx, postIds)
	if err != nil {
		return err
	}
	if _, err := deleteCommentSubtrees(ctx, tx, commentIds); err != nil {
		return err
	}
	return tx.DeletePosts(ctx, postIds)
}
