package state

import (
	"context"
	"fmt"
	"sync"

	"CineReel.com/client"
	"CineReel.com/interaction"
	"CineReel.com/model"
	"CineReel.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// PostView bundles everything one post's page needs: the post detail, the
// comment list, lazily expanded reply lists, and the like state. It lives
// for one mount and is rebuilt from the server on the next navigation.
type PostView struct {
	mu      sync.Mutex
	postID  int64
	session client.SessionProvider
	posts   *interaction.PostAPI
	api     *interaction.CommentAPI
	likeAPI *interaction.LikeAPI

	post    *model.Post
	related []model.Post
	replies map[int64]*ListController[model.Reply]
	closed  bool

	Comments *ListController[model.Comment]
	Likes    *LikeController
}

func NewPostView(rc client.Requester, session client.SessionProvider, postID int64) *PostView {
	api := interaction.NewCommentAPI(rc, session)
	view := &PostView{
		postID:  postID,
		session: session,
		posts:   interaction.NewPostAPI(rc),
		api:     api,
		likeAPI: interaction.NewLikeAPI(rc, session),
		replies: make(map[int64]*ListController[model.Reply]),
	}
	view.Comments = NewListController[model.Comment](api.Comments(postID))
	// Seeded with zero state; Load replaces it from the post's counters.
	view.Likes = NewLikeController(view.likeAPI, session, postID, false, 0)
	return view
}

// CommentAPI exposes the underlying mutation API, mainly so callers can
// attach a page cache or page size before Load.
func (v *PostView) CommentAPI() *interaction.CommentAPI { return v.api }

// Load fetches the post detail, seeds the like controller from its
// counters, and loads the first comment page.
func (v *PostView) Load(ctx context.Context) error {
	detail, err := v.posts.GetPost(ctx, v.postID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if v.closed {
		// Unmounted while the detail request was in flight: the response is
		// stale, drop it and leave the already-closed controllers alone.
		v.mu.Unlock()
		return nil
	}
	v.post = detail.Post
	v.related = detail.RelatedPosts
	v.Likes = NewLikeController(v.likeAPI, v.session, v.postID, detail.Post.Liked, detail.Post.LikeCount)
	v.mu.Unlock()

	return v.Comments.Load(ctx)
}

// Post returns the loaded post, or nil before Load.
func (v *PostView) Post() *model.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post
}

func (v *PostView) RelatedPosts() []model.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Post, len(v.related))
	copy(out, v.related)
	return out
}

// Replies returns the reply controller for one comment, creating it on
// first expansion. The first Load on it fetches the first reply page.
func (v *PostView) Replies(commentID int64) *ListController[model.Reply] {
	v.mu.Lock()
	defer v.mu.Unlock()
	if rc, ok := v.replies[commentID]; ok {
		return rc
	}
	rc := NewListController[model.Reply](v.api.Replies(commentID))
	if v.closed {
		rc.Close()
	}
	v.replies[commentID] = rc
	return rc
}

// SubmitComment creates a comment, appends the canonical entity locally, and
// bumps the post's comment counter.
func (v *PostView) SubmitComment(ctx context.Context, content string) (*model.Comment, error) {
	comment, err := v.api.CreateComment(ctx, v.postID, content)
	if err != nil {
		return nil, err
	}
	v.Comments.Add(*comment)
	v.adjustCommentCount(1)
	return comment, nil
}

// SubmitReply creates a reply, appends it to the comment's reply list, and
// bumps the parent's reply count through an explicit Update. CreateReply
// itself never touches the parent, so the increment lives here where it
// cannot be forgotten by UI code.
func (v *PostView) SubmitReply(ctx context.Context, commentID int64, content string) (*model.Reply, error) {
	reply, err := v.api.CreateReply(ctx, commentID, content)
	if err != nil {
		return nil, err
	}
	v.Replies(commentID).Add(*reply)
	if err := v.Comments.Update(commentID, func(c model.Comment) model.Comment {
		c.ReplyCount++
		return c
	}); err != nil {
		hlog.Warnf("reply count bump skipped, parent %d not in collection: %v", commentID, err)
	}
	return reply, nil
}

// EditComment sends the edit and replaces the local entity with the
// canonical result (updated_at advanced by the server).
func (v *PostView) EditComment(ctx context.Context, commentID int64, content string) (*model.Comment, error) {
	current, ok := v.Comments.Get(commentID)
	if !ok {
		return nil, errnoNotInView(commentID)
	}
	updated, err := v.api.UpdateComment(ctx, &current, content)
	if err != nil {
		return nil, err
	}
	_ = v.Comments.Update(commentID, func(model.Comment) model.Comment { return *updated })
	return updated, nil
}

// EditReply mirrors EditComment for one comment's reply list.
func (v *PostView) EditReply(ctx context.Context, commentID, replyID int64, content string) (*model.Reply, error) {
	list := v.Replies(commentID)
	current, ok := list.Get(replyID)
	if !ok {
		return nil, errnoNotInView(replyID)
	}
	updated, err := v.api.UpdateReply(ctx, &current, content)
	if err != nil {
		return nil, err
	}
	_ = list.Update(replyID, func(model.Reply) model.Reply { return *updated })
	return updated, nil
}

// DeleteComment removes the comment locally and always fires the network
// delete so the server converges even if local state was already out of
// sync. A failed delete restores nothing locally beyond reporting the error;
// the entity was removed on user intent and the next full fetch re-syncs.
func (v *PostView) DeleteComment(ctx context.Context, commentID int64) error {
	if _, present := v.Comments.Get(commentID); present {
		v.Comments.Remove(commentID)
		v.adjustCommentCount(-1)
	}
	return v.api.DeleteComment(ctx, commentID)
}

// DeleteReply removes the reply locally, decrements the parent's reply
// count, and fires the network delete.
func (v *PostView) DeleteReply(ctx context.Context, commentID, replyID int64) error {
	list := v.Replies(commentID)
	if _, present := list.Get(replyID); present {
		list.Remove(replyID)
		if err := v.Comments.Update(commentID, func(c model.Comment) model.Comment {
			if c.ReplyCount > 0 {
				c.ReplyCount--
			}
			return c
		}); err != nil {
			hlog.Warnf("reply count decrement skipped, parent %d not in collection: %v", commentID, err)
		}
	}
	return v.api.DeleteReply(ctx, replyID)
}

func errnoNotInView(id int64) error {
	return errno.NotFoundErr.WithMessage(fmt.Sprintf("entity %d not present in view", id))
}

func (v *PostView) adjustCommentCount(delta int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.post == nil {
		return
	}
	v.post.CommentCount += delta
	if v.post.CommentCount < 0 {
		v.post.CommentCount = 0
	}
}

// Close tears the view down; responses still in flight are discarded.
func (v *PostView) Close() {
	v.mu.Lock()
	v.closed = true
	likes := v.Likes
	replies := make([]*ListController[model.Reply], 0, len(v.replies))
	for _, rc := range v.replies {
		replies = append(replies, rc)
	}
	v.mu.Unlock()

	v.Comments.Close()
	likes.Close()
	for _, rc := range replies {
		rc.Close()
	}
}
