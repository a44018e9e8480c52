package state

import (
	"context"
	"sync"

	"CineReel.com/client"
	"CineReel.com/model"
	"CineReel.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// LikeAPI is what the controller needs from the network side.
type LikeAPI interface {
	ToggleLike(ctx context.Context, postID int64) (*model.LikeState, error)
}

// LikeController tracks liked/count for one (post, current-user) pair with
// flip-and-rollback semantics: the flip lands before the request goes out,
// the server's answer is authoritative, and a failed round-trip restores the
// pre-toggle pair exactly.
type LikeController struct {
	mu      sync.Mutex
	api     LikeAPI
	session client.SessionProvider
	postID  int64

	liked   bool
	count   int64
	lastErr error
	closed  bool
}

func NewLikeController(api LikeAPI, session client.SessionProvider, postID int64, liked bool, count int64) *LikeController {
	if count < 0 {
		count = 0
	}
	return &LikeController{
		api:     api,
		session: session,
		postID:  postID,
		liked:   liked,
		count:   count,
	}
}

// Toggle flips the like optimistically, issues the request, then reconciles.
// Under rapid double-toggle the second flip computes from the first's
// optimistic state and the last server response wins as the new baseline.
func (lk *LikeController) Toggle(ctx context.Context) error {
	if client.CurrentUser(lk.session) == nil {
		lk.mu.Lock()
		lk.lastErr = errno.AuthRequiredErr
		lk.mu.Unlock()
		return errno.AuthRequiredErr
	}

	lk.mu.Lock()
	if lk.closed {
		lk.mu.Unlock()
		return nil
	}
	prevLiked, prevCount := lk.liked, lk.count
	lk.liked = !lk.liked
	if lk.liked {
		lk.count++
	} else if lk.count > 0 {
		lk.count--
	}
	lk.mu.Unlock()

	srv, err := lk.api.ToggleLike(ctx, lk.postID)

	lk.mu.Lock()
	defer lk.mu.Unlock()
	if lk.closed {
		return nil
	}
	if err != nil {
		lk.liked, lk.count = prevLiked, prevCount
		lk.lastErr = err
		hlog.Warnf("like toggle for post %d failed, rolled back: %v", lk.postID, err)
		return err
	}
	lk.liked = srv.Liked
	lk.count = srv.Count
	if lk.count < 0 {
		lk.count = 0
	}
	lk.lastErr = nil
	return nil
}

// State returns the current liked flag and count.
func (lk *LikeController) State() (bool, int64) {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	return lk.liked, lk.count
}

func (lk *LikeController) Err() error {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	return lk.lastErr
}

// Close discards any response still in flight.
func (lk *LikeController) Close() {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	lk.closed = true
}
