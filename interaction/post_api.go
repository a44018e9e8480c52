package interaction

import (
	"context"
	"fmt"

	"CineReel.com/client"
	"CineReel.com/model"
	"CineReel.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// PostAPI reads post detail. Posts are owned by the backend; this layer only
// reads them and locally adjusts their counters.
type PostAPI struct {
	rc client.Requester
}

func NewPostAPI(rc client.Requester) *PostAPI {
	return &PostAPI{rc: rc}
}

// GetPost fetches a post together with its related posts. A missing post is
// NotFoundErr from the status mapping; a present-but-empty payload is
// normalized here rather than handed upward shapeless.
func (api *PostAPI) GetPost(ctx context.Context, postID int64) (*model.PostDetail, error) {
	detail := new(model.PostDetail)
	path := fmt.Sprintf("/posts/%d", postID)
	if err := api.rc.Do(ctx, consts.MethodGet, path, nil, nil, detail); err != nil {
		return nil, err
	}
	if detail.Post == nil {
		return nil, errno.RequestErr.WithMessage("post detail missing post")
	}
	return detail, nil
}
