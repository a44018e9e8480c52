package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"CineReel.com/client"
	"CineReel.com/model"
	"CineReel.com/pkg/errno"
)

// fakeRequester scripts the backend behind the Requester seam and counts
// how many requests actually go out.
type fakeRequester struct {
	calls int
	do    func(method, path string, query url.Values, body, out interface{}) error
}

func (f *fakeRequester) Do(_ context.Context, method, path string, query url.Values, body, out interface{}) error {
	f.calls++
	return f.do(method, path, query, body, out)
}

func fill(out, v interface{}) {
	b, _ := json.Marshal(v)
	_ = json.Unmarshal(b, out)
}

func signedIn() client.StaticSession {
	return client.StaticSession{S: &client.Session{
		User:  &model.UserSummary{UserId: 7, Username: "siskel"},
		Token: "tok",
	}}
}

func signedOut() client.StaticSession {
	return client.StaticSession{}
}

func TestCreateCommentValidation(t *testing.T) {
	rc := &fakeRequester{do: func(string, string, url.Values, interface{}, interface{}) error {
		t.Fatal("no network call expected")
		return nil
	}}
	api := NewCommentAPI(rc, signedIn())

	for _, text := range []string{"", "   ", "\n\t"} {
		t.Run(fmt.Sprintf("empty %q", text), func(t *testing.T) {
			_, err := api.CreateComment(context.Background(), 1, text)
			if !errors.Is(err, errno.ValidationErr) {
				t.Fatalf("expected ValidationErr, got %v", err)
			}
		})
	}
	if rc.calls != 0 {
		t.Errorf("validation failures issued %d requests", rc.calls)
	}
}

func TestCreateCommentAuthRequired(t *testing.T) {
	rc := &fakeRequester{do: func(string, string, url.Values, interface{}, interface{}) error {
		t.Fatal("no network call expected")
		return nil
	}}
	api := NewCommentAPI(rc, signedOut())

	_, err := api.CreateComment(context.Background(), 1, "great film")
	if !errors.Is(err, errno.AuthRequiredErr) {
		t.Fatalf("expected AuthRequiredErr, got %v", err)
	}
	if rc.calls != 0 {
		t.Errorf("auth failure issued %d requests", rc.calls)
	}
}

func TestCreateCommentTrimsContent(t *testing.T) {
	var sent string
	rc := &fakeRequester{do: func(method, path string, _ url.Values, body, out interface{}) error {
		payload := body.(contentPayload)
		sent = payload.Content
		fill(out, model.Comment{CommentId: 11, PostId: 1, Content: payload.Content})
		return nil
	}}
	api := NewCommentAPI(rc, signedIn())

	comment, err := api.CreateComment(context.Background(), 1, "  great film  ")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if sent != "great film" {
		t.Errorf("sent %q, want trimmed content", sent)
	}
	if comment.CommentId != 11 {
		t.Errorf("expected server-assigned id, got %+v", comment)
	}
}

func TestUpdateCommentUnchangedIsNoop(t *testing.T) {
	rc := &fakeRequester{do: func(string, string, url.Values, interface{}, interface{}) error {
		t.Fatal("no network call expected for unchanged text")
		return nil
	}}
	api := NewCommentAPI(rc, signedIn())

	current := &model.Comment{CommentId: 3, Content: "great film"}
	got, err := api.UpdateComment(context.Background(), current, "  great film ")
	if err != nil {
		t.Fatalf("UpdateComment failed: %v", err)
	}
	if got != current {
		t.Error("unchanged update must return the original entity")
	}
	if rc.calls != 0 {
		t.Errorf("unchanged update issued %d requests", rc.calls)
	}
}

// TestUpdateCommentRoundTrip edits a comment and checks a fresh page fetch
// of the same backend state carries the new text.
func TestUpdateCommentRoundTrip(t *testing.T) {
	stored := model.Comment{CommentId: 3, PostId: 1, Content: "good film", CreatedAt: "2026-08-01 10:00:00", UpdatedAt: "2026-08-01 10:00:00"}
	rc := &fakeRequester{do: func(method, path string, _ url.Values, body, out interface{}) error {
		switch {
		case method == "PATCH":
			stored.Content = body.(contentPayload).Content
			stored.UpdatedAt = "2026-08-02 09:30:00"
			fill(out, stored)
		case method == "GET":
			fill(out, Page[model.Comment]{Items: []model.Comment{stored}, HasMore: false})
		default:
			return fmt.Errorf("unexpected %s %s", method, path)
		}
		return nil
	}}
	api := NewCommentAPI(rc, signedIn())

	updated, err := api.UpdateComment(context.Background(), &stored, "new text")
	if err != nil {
		t.Fatalf("UpdateComment failed: %v", err)
	}
	if updated.Content != "new text" {
		t.Fatalf("updated content %q", updated.Content)
	}
	if !updated.Edited() {
		t.Error("updated_at must advance past created_at")
	}

	page, err := api.Comments(1)(context.Background(), "")
	if err != nil {
		t.Fatalf("page fetch failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Content != "new text" {
		t.Fatalf("fresh page shows %+v, want the edited text", page.Items)
	}
}

func TestDeleteCommentAlwaysFires(t *testing.T) {
	var deleted []string
	rc := &fakeRequester{do: func(method, path string, _ url.Values, _, _ interface{}) error {
		if method != "DELETE" {
			t.Fatalf("unexpected method %s", method)
		}
		deleted = append(deleted, path)
		return nil
	}}
	api := NewCommentAPI(rc, signedIn())

	// Two deletes of the same id: caller-side idempotence is a UI concern,
	// the network delete fires both times so the server converges.
	for i := 0; i < 2; i++ {
		if err := api.DeleteComment(context.Background(), 9); err != nil {
			t.Fatalf("DeleteComment failed: %v", err)
		}
	}
	if len(deleted) != 2 || deleted[0] != "/comments/9" {
		t.Fatalf("deletes sent: %v", deleted)
	}
}

func TestForbiddenSurfacesDistinctly(t *testing.T) {
	rc := &fakeRequester{do: func(string, string, url.Values, interface{}, interface{}) error {
		return errno.ForbiddenErr
	}}
	api := NewCommentAPI(rc, signedIn())

	err := api.DeleteComment(context.Background(), 9)
	if !errors.Is(err, errno.ForbiddenErr) {
		t.Fatalf("expected ForbiddenErr, got %v", err)
	}
}

func TestReplyPagerScopedToComment(t *testing.T) {
	var gotPath string
	var gotLimit string
	rc := &fakeRequester{do: func(method, path string, query url.Values, _, out interface{}) error {
		gotPath = path
		gotLimit = query.Get("limit")
		fill(out, Page[model.Reply]{Items: []model.Reply{{ReplyId: 21, CommentId: 5}}, HasMore: false})
		return nil
	}}
	api := NewCommentAPI(rc, signedIn()).WithPageSize(10)

	page, err := api.Replies(5)(context.Background(), "")
	if err != nil {
		t.Fatalf("reply fetch failed: %v", err)
	}
	if gotPath != "/comments/5/replies" {
		t.Errorf("fetched %s", gotPath)
	}
	if gotLimit != "10" {
		t.Errorf("limit %q, want 10", gotLimit)
	}
	if len(page.Items) != 1 || page.Items[0].CommentId != 5 {
		t.Errorf("page %+v", page.Items)
	}
}
