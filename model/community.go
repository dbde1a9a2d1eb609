package model

import "time"

type Community struct {
	Id          int64            `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Creator     *DisplayableUser `json:"creator"`
	Members     []string         `json:"members"`
	Moderators  []string         `json:"moderators"`
	Posts       []int64          `json:"posts"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (c *Community) IsCreator(userId string) bool {
	return c.Creator != nil && c.Creator.Id == userId
}

func (c *Community) IsMember(userId string) bool {
	return contains(c.Members, userId)
}

func (c *Community) IsModerator(userId string) bool {
	return contains(c.Moderators, userId)
}

// CommunityWithMembership is a community as seen by a particular viewer
type CommunityWithMembership struct {
	*Community
	IsMember    bool `json:"isMember"`
	IsModerator bool `json:"isModerator"`
}

func (c *Community) For(user *User) *CommunityWithMembership {
	view := &CommunityWithMembership{Community: c}
	if user != nil {
		view.IsMember = c.IsMember(user.Id)
		view.IsModerator = c.IsModerator(user.Id)
	}
	return view
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
