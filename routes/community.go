package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/middleware"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

type communityRoutes struct {
	controller *controllers.CommunityController
}

func AddCommunityRoutes(group *gin.RouterGroup, controller *controllers.CommunityController, guards *Guards) {
	routes := communityRoutes{controller}
	communities := group.Group("/communities", guards.Session)
	communities.GET("", util.HandlerWrapper(routes.getCommunities, &util.HandlerOpts{}))
	communities.GET("/:id", util.HandlerWrapper(routes.getCommunity, &util.HandlerOpts{}))
	communities.GET("/:id/posts", util.HandlerWrapper(routes.getCommunityPosts, &util.HandlerOpts{}))
	communities.PUT("", guards.writing(util.HandlerWrapper(routes.createCommunity, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))...)
	communities.POST("/:id", guards.writing(util.HandlerWrapper(routes.updateCommunity, &util.HandlerOpts{}))...)
	communities.DELETE("/:id", guards.writing(util.HandlerWrapper(routes.deleteCommunity, &util.HandlerOpts{}))...)
	communities.POST("/:id/join", guards.writing(util.HandlerWrapper(routes.join, &util.HandlerOpts{}))...)
	communities.POST("/:id/leave", guards.writing(util.HandlerWrapper(routes.leave, &util.HandlerOpts{}))...)
	communities.PUT("/:id/moderators/:userId", guards.writing(util.HandlerWrapper(routes.addModerator, &util.HandlerOpts{}))...)
	communities.DELETE("/:id/moderators/:userId", guards.writing(util.HandlerWrapper(routes.removeModerator, &util.HandlerOpts{}))...)
}

func (cr *communityRoutes) createCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CommunityReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	community, err := cr.controller.CreateCommunity(c, user, &req)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return community.For(user), nil
}

func (cr *communityRoutes) getCommunities(c *gin.Context) (interface{}, *util.HTTPError) {
	communities, err := cr.controller.GetCommunities(c)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	user := middleware.GetUserMaybe(c)
	views := make([]*model.CommunityWithMembership, len(communities))
	for i, community := range communities {
		views[i] = community.For(user)
	}
	return views, nil
}

func (cr *communityRoutes) getCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	community, err := cr.controller.GetCommunity(c, c.Param("id"))
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return community.For(middleware.GetUserMaybe(c)), nil
}

func (cr *communityRoutes) getCommunityPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	posts, err := cr.controller.GetCommunityPosts(c, c.Param("id"))
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return posts, nil
}

func (cr *communityRoutes) updateCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req controllers.CommunityReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	community, err := cr.controller.UpdateCommunity(c, user, id, &req)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return community.For(user), nil
}

func (cr *communityRoutes) deleteCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := cr.controller.DeleteCommunity(c, middleware.MustGetUser(c), id); err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}

func (cr *communityRoutes) join(c *gin.Context) (interface{}, *util.HTTPError) {
	return cr.membershipAction(c, cr.controller.Join)
}

func (cr *communityRoutes) leave(c *gin.Context) (interface{}, *util.HTTPError) {
	return cr.membershipAction(c, cr.controller.Leave)
}

func (cr *communityRoutes) addModerator(c *gin.Context) (interface{}, *util.HTTPError) {
	return cr.moderatorAction(c, cr.controller.AddModerator)
}

func (cr *communityRoutes) removeModerator(c *gin.Context) (interface{}, *util.HTTPError) {
	return cr.moderatorAction(c, cr.controller.RemoveModerator)
}

type membershipFn func(ctx context.Context, actor *model.User, id int64) (*model.Community, error)

type moderatorFn func(ctx context.Context, actor *model.User, id int64, userId string) (*model.Community, error)

func (cr *communityRoutes) membershipAction(c *gin.Context, action membershipFn) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	community, err := action(c, user, id)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return community.For(user), nil
}

func (cr *communityRoutes) moderatorAction(c *gin.Context, action moderatorFn) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	community, err := action(c, user, id, c.Param("userId"))
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return community.For(user), nil
}
