package domain

import "time"

// Post represents a published article or guide
type Post struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   *string   `json:"owner_id" db:"owner_id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Excerpt   *string   `json:"excerpt" db:"excerpt"`
	Content   *string   `json:"content" db:"content"`
	Type      string    `json:"type" db:"type"`
	MapID     *string   `json:"map_id" db:"map_id"`
	Published bool      `json:"published" db:"published"`
	Views     int64     `json:"views" db:"views"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Video represents an uploaded gameplay clip
type Video struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     *string   `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	MapID       *string   `json:"map_id" db:"map_id"`
	Agent       *string   `json:"agent" db:"agent"`
	Side        *string   `json:"side" db:"side"`
	VideoURL    *string   `json:"video_url" db:"video_url"`
	ThumbURL    *string   `json:"thumb_url" db:"thumb_url"`
	Views       int64     `json:"views" db:"views"`
	Likes       int       `json:"likes" db:"likes"`
	Dislikes    int       `json:"dislikes" db:"dislikes"`
	Published   bool      `json:"published" db:"published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Comment represents a comment on a post. Comments form a tree via ParentID
// and are deleted logically so replies stay attached.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	UserID    *string   `json:"user_id" db:"user_id"`
	PostID    string    `json:"post_id" db:"post_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"`
	Content   string    `json:"content" db:"content"`
	IsDeleted bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Like target types. Stored in the like_target postgres enum.
const (
	LikeTargetPost    = "post"
	LikeTargetVideo   = "video"
	LikeTargetComment = "comment"
)

// Like values.
const (
	LikeValueUp   = 1
	LikeValueDown = -1
)

// Like represents a per-user reaction to a post, video or comment. At most
// one row exists per (user, target_type, target_id).
type Like struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	TargetType string    `json:"target_type" db:"target_type"`
	TargetID   string    `json:"target_id" db:"target_id"`
	Value      int       `json:"value" db:"value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Tag represents a content tag
type Tag struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
