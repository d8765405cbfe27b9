package models

import "time"

// Comment is a reader comment attached to a post. AuthorName is snapshotted
// at creation time so comments stay readable without a join.
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID     string    `json:"postId" gorm:"index;type:varchar(36)"`
	AuthorID   string    `json:"authorId" gorm:"type:varchar(36)"`
	AuthorName string    `json:"authorName" gorm:"type:varchar(101)"`
	Content    string    `json:"content" gorm:"type:varchar(1000)"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateCommentRequest is the payload for adding a comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
