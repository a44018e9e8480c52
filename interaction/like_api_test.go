package interaction

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"CineReel.com/model"
	"CineReel.com/pkg/errno"
)

func TestToggleLikeRequiresSession(t *testing.T) {
	rc := &fakeRequester{do: func(string, string, url.Values, interface{}, interface{}) error {
		t.Fatal("no network call expected")
		return nil
	}}
	api := NewLikeAPI(rc, signedOut())

	_, err := api.ToggleLike(context.Background(), 1)
	if !errors.Is(err, errno.AuthRequiredErr) {
		t.Fatalf("expected AuthRequiredErr, got %v", err)
	}
	if rc.calls != 0 {
		t.Errorf("signed-out toggle issued %d requests", rc.calls)
	}
}

func TestToggleLikeReturnsServerState(t *testing.T) {
	var gotPath, gotMethod string
	rc := &fakeRequester{do: func(method, path string, _ url.Values, _, out interface{}) error {
		gotMethod, gotPath = method, path
		fill(out, model.LikeState{Liked: true, Count: 11})
		return nil
	}}
	api := NewLikeAPI(rc, signedIn())

	state, err := api.ToggleLike(context.Background(), 1)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if gotMethod != "POST" || gotPath != "/posts/1/like" {
		t.Errorf("sent %s %s", gotMethod, gotPath)
	}
	if !state.Liked || state.Count != 11 {
		t.Errorf("state %+v", state)
	}
}

func TestGetPostNormalizesEmptyDetail(t *testing.T) {
	rc := &fakeRequester{do: func(_, _ string, _ url.Values, _, out interface{}) error {
		fill(out, model.PostDetail{}) // backend answered 200 with no post
		return nil
	}}
	api := NewPostAPI(rc)

	_, err := api.GetPost(context.Background(), 1)
	if !errors.Is(err, errno.RequestErr) {
		t.Fatalf("expected RequestErr, got %v", err)
	}
}

func TestGetPostNotFoundPropagates(t *testing.T) {
	rc := &fakeRequester{do: func(string, string, url.Values, interface{}, interface{}) error {
		return errno.NotFoundErr
	}}
	api := NewPostAPI(rc)

	_, err := api.GetPost(context.Background(), 404)
	if !errors.Is(err, errno.NotFoundErr) {
		t.Fatalf("expected NotFoundErr, got %v", err)
	}
}
