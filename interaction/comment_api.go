package interaction

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"CineReel.com/client"
	"CineReel.com/model"
	"CineReel.com/pkg/cache"
	"CineReel.com/pkg/constants"
	"CineReel.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CommentAPI is the mutation surface for comments and replies plus the page
// fetchers the controllers paginate with. Every mutating call checks the
// session and the content locally before anything goes on the wire.
type CommentAPI struct {
	rc       client.Requester
	session  client.SessionProvider
	pageSize int
	cache    *cache.PageCacheManager
}

func NewCommentAPI(rc client.Requester, session client.SessionProvider) *CommentAPI {
	return &CommentAPI{
		rc:       rc,
		session:  session,
		pageSize: constants.DefaultPageSize,
	}
}

// WithPageSize overrides the page size for list fetches.
func (api *CommentAPI) WithPageSize(size int) *CommentAPI {
	if size > 0 && size <= constants.MaxPageSize {
		api.pageSize = size
	}
	return api
}

// WithCache attaches an optional first-page cache. Cache failures only log;
// the fetch falls through to the network.
func (api *CommentAPI) WithCache(pcm *cache.PageCacheManager) *CommentAPI {
	api.cache = pcm
	return api
}

type contentPayload struct {
	Content string `json:"content"`
}

func (api *CommentAPI) requireUser() (*model.UserSummary, error) {
	user := client.CurrentUser(api.session)
	if user == nil {
		return nil, errno.AuthRequiredErr
	}
	return user, nil
}

// validateContent trims and bounds-checks comment/reply text. The trimmed
// form is what goes to the backend.
func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", errno.ValidationErr.WithMessage("comment content cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > constants.MaxCommentLength {
		return "", errno.ValidationErr.WithMessage(
			fmt.Sprintf("comment too long, maximum %d characters allowed", constants.MaxCommentLength))
	}
	return trimmed, nil
}

func (api *CommentAPI) CreateComment(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	if _, err := api.requireUser(); err != nil {
		return nil, err
	}
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	comment := new(model.Comment)
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := api.rc.Do(ctx, consts.MethodPost, path, nil, contentPayload{Content: trimmed}, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (api *CommentAPI) CreateReply(ctx context.Context, commentID int64, content string) (*model.Reply, error) {
	if _, err := api.requireUser(); err != nil {
		return nil, err
	}
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	reply := new(model.Reply)
	path := fmt.Sprintf("/comments/%d/replies", commentID)
	if err := api.rc.Do(ctx, consts.MethodPost, path, nil, contentPayload{Content: trimmed}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// UpdateComment edits a comment's text. When the trimmed text equals the
// current content the call is a no-op returning the entity as-is, saving a
// round-trip.
func (api *CommentAPI) UpdateComment(ctx context.Context, current *model.Comment, content string) (*model.Comment, error) {
	if _, err := api.requireUser(); err != nil {
		return nil, err
	}
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if trimmed == current.Content {
		return current, nil
	}

	updated := new(model.Comment)
	path := fmt.Sprintf("/comments/%d", current.CommentId)
	if err := api.rc.Do(ctx, consts.MethodPatch, path, nil, contentPayload{Content: trimmed}, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (api *CommentAPI) UpdateReply(ctx context.Context, current *model.Reply, content string) (*model.Reply, error) {
	if _, err := api.requireUser(); err != nil {
		return nil, err
	}
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if trimmed == current.Content {
		return current, nil
	}

	updated := new(model.Reply)
	path := fmt.Sprintf("/replies/%d", current.ReplyId)
	if err := api.rc.Do(ctx, consts.MethodPatch, path, nil, contentPayload{Content: trimmed}, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteComment always fires the network delete so the server converges even
// when local state already dropped the entity. Ownership is enforced by the
// backend; a rejection surfaces as ForbiddenErr.
func (api *CommentAPI) DeleteComment(ctx context.Context, commentID int64) error {
	if _, err := api.requireUser(); err != nil {
		return err
	}
	path := fmt.Sprintf("/comments/%d", commentID)
	return api.rc.Do(ctx, consts.MethodDelete, path, nil, nil, nil)
}

func (api *CommentAPI) DeleteReply(ctx context.Context, replyID int64) error {
	if _, err := api.requireUser(); err != nil {
		return err
	}
	path := fmt.Sprintf("/replies/%d", replyID)
	return api.rc.Do(ctx, consts.MethodDelete, path, nil, nil, nil)
}

// Comments builds the page fetcher for a post's comment collection.
func (api *CommentAPI) Comments(postID int64) PageFunc[model.Comment] {
	path := fmt.Sprintf("/posts/%d/comments", postID)
	return func(ctx context.Context, cursor string) (*Page[model.Comment], error) {
		page := new(Page[model.Comment])
		if api.pageFromCache(ctx, cache.CommentPageCacheKey(postID, cursor), page) {
			return page, nil
		}
		if err := api.rc.Do(ctx, consts.MethodGet, path, api.pageQuery(cursor), nil, page); err != nil {
			return nil, err
		}
		api.storePage(ctx, cache.CommentPageCacheKey(postID, cursor), page)
		return page, nil
	}
}

// Replies builds the page fetcher for one comment's reply collection.
func (api *CommentAPI) Replies(commentID int64) PageFunc[model.Reply] {
	path := fmt.Sprintf("/comments/%d/replies", commentID)
	return func(ctx context.Context, cursor string) (*Page[model.Reply], error) {
		page := new(Page[model.Reply])
		if api.pageFromCache(ctx, cache.ReplyPageCacheKey(commentID, cursor), page) {
			return page, nil
		}
		if err := api.rc.Do(ctx, consts.MethodGet, path, api.pageQuery(cursor), nil, page); err != nil {
			return nil, err
		}
		api.storePage(ctx, cache.ReplyPageCacheKey(commentID, cursor), page)
		return page, nil
	}
}

func (api *CommentAPI) pageQuery(cursor string) url.Values {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(api.pageSize))
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	return query
}

func (api *CommentAPI) pageFromCache(ctx context.Context, key string, out interface{}) bool {
	if api.cache == nil {
		return false
	}
	hit, err := api.cache.GetPage(ctx, key, out)
	if err != nil {
		hlog.Warnf("page cache read failed for %s: %v", key, err)
		return false
	}
	return hit
}

func (api *CommentAPI) storePage(ctx context.Context, key string, page interface{}) {
	if api.cache == nil {
		return
	}
	if err := api.cache.CachePage(ctx, key, page); err != nil {
		hlog.Warnf("page cache write failed for %s: %v", key, err)
	}
}
