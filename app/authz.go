package app

import "github.com/navbryce/heddit-be/model"

type Capability string

const (
	CapEditCommunity    Capability = "EDIT_COMMUNITY"
	CapDeleteCommunity  Capability = "DELETE_COMMUNITY"
	CapManageModerators Capability = "MANAGE_MODERATORS"
	CapPost             Capability = "POST"
	CapEditContent      Capability = "EDIT_CONTENT"
	CapDeleteContent    Capability = "DELETE_CONTENT"
)

// Resource is what an actor wants to act on. AuthorId is empty for
// community-level resources.
type Resource struct {
	Community *model.Community
	AuthorId  string
}

func CommunityResource(community *model.Community) Resource {
	return Resource{Community: community}
}

func ContentResource(community *model.Community, authorId string) Resource {
	return Resource{Community: community, AuthorId: authorId}
}

func Can(actor *model.User, res Resource, capability Capability) bool {
	if actor == nil {
		return false
	}
	isAuthor := res.AuthorId != "" && res.AuthorId == actor.Id
	isCreator := res.Community != nil && res.Community.IsCreator(actor.Id)
	isModerator := res.Community != nil && res.Community.IsModerator(actor.Id)

	switch capability {
	case CapEditCommunity, CapDeleteCommunity:
		return isCreator || isModerator
	case CapManageModerators:
		return isCreator
	case CapPost:
		return res.Community != nil && res.Community.IsMember(actor.Id)
	case CapEditContent:
		return isAuthor
	case CapDeleteContent:
		return isAuthor || isCreator || isModerator
	default:
		return false
	}
}

// Require is Can with the failure mapped to an *Error
func Require(actor *model.User, res Resource, capability Capability) error {
	if Can(actor, res, capability) {
		return nil
	}
	if capability == CapPost {
		return AuthorizationErr(CodeNotMember, "must be a member of the community to post")
	}
	return AuthorizationErr(CodeUnauthorized, "not allowed to %v", capabilityDescriptions[capability])
}

var capabilityDescriptions = map[Capability]string{
	CapEditCommunity:    "edit this community",
	CapDeleteCommunity:  "delete this community",
	CapManageModerators: "manage moderators of this community",
	CapEditContent:      "edit this content",
	CapDeleteContent:    "delete this content",
}
