package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/middleware"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

type commentRoutes struct {
	controller *controllers.CommentController
}

func AddCommentRoutes(group *gin.RouterGroup, controller *controllers.CommentController, votes *controllers.VoteController, guards *Guards) {
	routes := commentRoutes{controller}
	comments := group.Group("/comments", guards.Session)
	comments.PUT("", guards.writing(util.HandlerWrapper(routes.createComment, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))...)
	comments.POST("/:id", guards.writing(util.HandlerWrapper(routes.updateComment, &util.HandlerOpts{}))...)
	comments.DELETE("/:id", guards.writing(util.HandlerWrapper(routes.deleteComment, &util.HandlerOpts{}))...)
	addVoteRoutes(comments, model.TargetComment, votes, guards)
}

func (cr *commentRoutes) createComment(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreateCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	comment, err := cr.controller.CreateComment(c, middleware.MustGetUser(c), &req)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return comment, nil
}

func (cr *commentRoutes) updateComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req controllers.UpdateCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	comment, err := cr.controller.UpdateComment(c, middleware.MustGetUser(c), id, &req)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return comment, nil
}

func (cr *commentRoutes) deleteComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	deleted, err := cr.controller.DeleteComment(c, middleware.MustGetUser(c), id)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return gin.H{"id": id, "deleted": deleted}, nil
}
