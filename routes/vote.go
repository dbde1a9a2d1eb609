package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/middleware"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

var voteActions = []model.VoteAction{
	model.ActionUpvote,
	model.ActionDownvote,
	model.ActionRemoveUpvote,
	model.ActionRemoveDownvote,
}

// addVoteRoutes registers POST /:id/<action> for each vote action on group
func addVoteRoutes(group *gin.RouterGroup, kind model.TargetKind, controller *controllers.VoteController, guards *Guards) {
	for _, action := range voteActions {
		group.POST("/:id/"+string(action), guards.writing(util.HandlerWrapper(voteHandler(kind, action, controller), &util.HandlerOpts{}))...)
	}
}

func voteHandler(kind model.TargetKind, action model.VoteAction, controller *controllers.VoteController) util.Handler {
	return func(c *gin.Context) (interface{}, *util.HTTPError) {
		id, httpErr := util.ParseId(c.Param("id"))
		if httpErr != nil {
			return nil, httpErr
		}
		votes, err := controller.Vote(c, middleware.MustGetUser(c), model.VoteTarget{Kind: kind, Id: id}, action)
		if err != nil {
			return nil, util.BuildHTTPErr(err)
		}
		return gin.H{"votes": votes}, nil
	}
}
