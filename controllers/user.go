package controllers

import (
	"context"

	"github.com/navbryce/heddit-be/app"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
)

type UserController struct {
	db appDb.UserDatabase
}

func NewUserController(db appDb.UserDatabase) *UserController {
	return &UserController{db: db}
}

// Register creates the local profile for an authenticated identity
func (uc *UserController) Register(ctx context.Context, uid, username string) (*model.User, error) {
	if err := app.ValidateUsername(username); err != nil {
		return nil, err
	}
	existing, err := uc.db.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, app.ValidationErr("a profile already exists for this account")
	}
	if err := uc.db.CreateUser(ctx, &model.User{Id: uid, Username: username}); err != nil {
		if appDb.IsDupKeyErr(err) {
			return nil, app.ValidationErr("username %q is taken", username)
		}
		return nil, err
	}
	return uc.db.GetUser(ctx, uid)
}
