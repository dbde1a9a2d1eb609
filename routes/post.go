package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/middleware"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

type postRoutes struct {
	controller *controllers.PostController
}

func AddPostRoutes(group *gin.RouterGroup, controller *controllers.PostController, votes *controllers.VoteController, guards *Guards) {
	routes := postRoutes{controller}
	posts := group.Group("/posts", guards.Session)
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.PUT("", guards.writing(util.HandlerWrapper(routes.createPost, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))...)
	posts.POST("/:id", guards.writing(util.HandlerWrapper(routes.updatePost, &util.HandlerOpts{}))...)
	posts.DELETE("/:id", guards.writing(util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))...)
	addVoteRoutes(posts, model.TargetPost, votes, guards)
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreatePostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	post, err := pr.controller.CreatePost(c, middleware.MustGetUser(c), &req)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return post, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.controller.GetPost(c, id)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return post, nil
}

func (pr *postRoutes) updatePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req controllers.UpdatePostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	post, err := pr.controller.UpdatePost(c, middleware.MustGetUser(c), id, &req)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return post, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := pr.controller.DeletePost(c, middleware.MustGetUser(c), id); err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}
