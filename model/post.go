package model

type Post struct {
	PostId       int64    `json:"post_id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Year         int      `json:"year"`
	Director     string   `json:"director"`
	StreamingAt  string   `json:"streaming_at"`
	Genres       []string `json:"genres"`
	CoverUrl     string   `json:"cover_url"`
	CommentCount int64    `json:"comment_count"`
	LikeCount    int64    `json:"like_count"`
	Liked        bool     `json:"liked"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type PostDetail struct {
	Post         *Post  `json:"post"`
	RelatedPosts []Post `json:"related_posts"`
}

type LikeState struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
