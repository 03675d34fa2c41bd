package comment

import (
	"context"
	"time"

	"inkwell/internal/core/comment"
	userPort "inkwell/internal/ports/user"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID      string            `json:"id"`
	PostID  string            `json:"post_id"`
	Author  *userPort.UserDTO `json:"author,omitempty"`
	Text    string            `json:"text"`
	Created time.Time         `json:"created"`
}

func NewCommentDTO(c *comment.Comment) *CommentDTO {
	dto := &CommentDTO{
		ID:      c.ID.String(),
		PostID:  c.PostID.String(),
		Text:    c.Text,
		Created: c.Created,
	}
	if c.Author.Username != "" {
		dto.Author = userPort.NewUserDTO(&c.Author)
	}
	return dto
}
