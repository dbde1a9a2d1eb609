package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/middleware"
	"github.com/navbryce/heddit-be/util"
)

type userRoutes struct {
	controller *controllers.UserController
}

func AddUserRoutes(group *gin.RouterGroup, userDB db.UserDatabase, controller *controllers.UserController, verifier middleware.TokenVerifier) {
	routes := userRoutes{controller}
	users := group.Group("/users")
	users.PUT("", middleware.GenAuth(userDB, verifier, &middleware.AuthConfig{
		AppAccountNotRequired: true,
	}), util.HandlerWrapper(routes.createUser, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	users.GET("/me", middleware.GenAuth(userDB, verifier, &middleware.AuthConfig{}),
		util.HandlerWrapper(routes.getMe, &util.HandlerOpts{}))
}

type createUserReq struct {
	Username string `json:"username"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user, err := ur.controller.Register(c, middleware.MustGetToken(c).UID, req.Username)
	if err != nil {
		return nil, util.BuildHTTPErr(err)
	}
	return user, nil
}

func (ur *userRoutes) getMe(c *gin.Context) (interface{}, *util.HTTPError) {
	return middleware.MustGetUser(c), nil
}
