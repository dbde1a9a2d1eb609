package planetscale

import (
	"strings"

	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

// inClause returns "(?, ?, ...)" and args for a raw IN over ids. ids must not be empty.
func inClause(ids []int64) (string, []interface{}) {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ")", args
}

func displayableUser(id, username string) *model.DisplayableUser {
	if id == "" {
		return nil
	}
	return &model.DisplayableUser{
		Id:       id,
		Username: username,
		Avatar:   util.Avatar(id),
	}
}
