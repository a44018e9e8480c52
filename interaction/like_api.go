package interaction

import (
	"context"
	"fmt"

	"CineReel.com/client"
	"CineReel.com/model"
	"CineReel.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// LikeAPI toggles the (post, current-user) like state. The server answers
// with the authoritative liked/count pair.
type LikeAPI struct {
	rc      client.Requester
	session client.SessionProvider
}

func NewLikeAPI(rc client.Requester, session client.SessionProvider) *LikeAPI {
	return &LikeAPI{rc: rc, session: session}
}

func (api *LikeAPI) ToggleLike(ctx context.Context, postID int64) (*model.LikeState, error) {
	if client.CurrentUser(api.session) == nil {
		return nil, errno.AuthRequiredErr
	}

	state := new(model.LikeState)
	path := fmt.Sprintf("/posts/%d/like", postID)
	if err := api.rc.Do(ctx, consts.MethodPost, path, nil, nil, state); err != nil {
		return nil, err
	}
	return state, nil
}
