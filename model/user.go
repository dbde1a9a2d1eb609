package model

import "time"

// User holds the local profile of an identity-provider account
type User struct {
	Id        string    `db:"firebase_id" json:"id"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type DisplayableUser struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
