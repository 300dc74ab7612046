package models

import (
	"strings"
	"time"
)

// Post captures the author's name and avatar at creation time; they are not
// re-synced if the user later changes either.
type Post struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	Name      string    `json:"name" bson:"name"`
	AvatarURL string    `json:"avatar" bson:"avatar"`
	Likes     []Like    `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"date" bson:"created_at"`
}

// Like marks that a user liked a post. A post holds at most one Like per user.
type Like struct {
	ID     string `json:"id" bson:"id"`
	UserID string `json:"user" bson:"user_id"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Text) == "" {
		errors["text"] = "Text is required"
	}

	return errors
}
