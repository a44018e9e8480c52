package model

type UserSummary struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
}

type Comment struct {
	CommentId  int64       `json:"comment_id"`
	PostId     int64       `json:"post_id"`
	User       UserSummary `json:"user"`
	Content    string      `json:"content"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
	ReplyCount int64       `json:"reply_count"`
}

// Reply mirrors Comment but is scoped to a parent comment. Replies are a
// separate paginated collection, never embedded in the comment itself.
type Reply struct {
	ReplyId   int64       `json:"reply_id"`
	CommentId int64       `json:"comment_id"`
	PostId    int64       `json:"post_id"`
	User      UserSummary `json:"user"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

func (c Comment) EntityID() int64 { return c.CommentId }
func (r Reply) EntityID() int64   { return r.ReplyId }

// Edited reports whether the entity carries a visible edit marker.
func (c Comment) Edited() bool { return c.UpdatedAt != "" && c.UpdatedAt != c.CreatedAt }
func (r Reply) Edited() bool   { return r.UpdatedAt != "" && r.UpdatedAt != r.CreatedAt }
