package contact

import (
	"context"
	"time"

	"inkwell/internal/core/contact"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *contact.Contact) (*contact.Contact, error)
	List(ctx context.Context, onlyUnanswered bool) ([]*contact.Contact, error)
	MarkAnswered(ctx context.Context, id string) error
}

type ContactDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	IsAnswered bool      `json:"is_answered"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewContactDTO(c *contact.Contact) *ContactDTO {
	return &ContactDTO{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      c.Email,
		Subject:    c.Subject,
		Body:       c.Body,
		IsAnswered: c.IsAnswered,
		CreatedAt:  c.CreatedAt,
	}
}
