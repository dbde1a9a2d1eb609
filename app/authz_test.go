package app

import (
	"testing"

	"github.com/navbryce/heddit-be/model"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	community := &model.Community{
		Creator:    &model.DisplayableUser{Id: "creator"},
		Members:    []string{"creator", "mod", "member", "author"},
		Moderators: []string{"creator", "mod"},
	}
	actors := []string{"creator", "mod", "member", "author", "stranger"}

	tests := []struct {
		capability Capability
		resource   Resource
		allowed    []string
	}{
		{CapEditCommunity, CommunityResource(community), []string{"creator", "mod"}},
		{CapDeleteCommunity, CommunityResource(community), []string{"creator", "mod"}},
		{CapManageModerators, CommunityResource(community), []string{"creator"}},
		{CapPost, CommunityResource(community), []string{"creator", "mod", "member", "author"}},
		{CapEditContent, ContentResource(community, "author"), []string{"author"}},
		{CapDeleteContent, ContentResource(community, "author"), []string{"creator", "mod", "author"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			for _, actor := range actors {
				want := false
				for _, allowed := range tt.allowed {
					want = want || allowed == actor
				}
				assert.Equal(t, want, Can(&model.User{Id: actor}, tt.resource, tt.capability), actor)
			}
		})
	}
}

func TestCanRejectsAnonymous(t *testing.T) {
	assert.False(t, Can(nil, ContentResource(nil, ""), CapEditContent))
}

func TestRequire(t *testing.T) {
	community := &model.Community{Creator: &model.DisplayableUser{Id: "creator"}}
	stranger := &model.User{Id: "stranger"}

	err := Require(stranger, CommunityResource(community), CapPost)
	assert.Equal(t, CodeNotMember, CodeOf(err))
	assert.Equal(t, KindAuthorization, KindOf(err))

	err = Require(stranger, CommunityResource(community), CapDeleteCommunity)
	assert.Equal(t, CodeUnauthorized, CodeOf(err))
}
