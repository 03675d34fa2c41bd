package database

import (
	"context"

	"inkwell/internal/core/contact"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ContactRepositoryDatabase struct {
	db *gorm.DB
}

func NewContactRepositoryDatabase(db *gorm.DB) *ContactRepositoryDatabase {
	return &ContactRepositoryDatabase{db: db}
}

func (repo *ContactRepositoryDatabase) Create(ctx context.Context, c *contact.Contact) (*contact.Contact, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translateError(err, "contact", c.ID)
	}
	return c, nil
}

func (repo *ContactRepositoryDatabase) List(ctx context.Context, onlyUnanswered bool) ([]*contact.Contact, error) {
	var contacts []*contact.Contact
	q := repo.db.WithContext(ctx).Order("created_at DESC")
	if onlyUnanswered {
		q = q.Where("is_answered = ?", false)
	}
	if err := q.Find(&contacts).Error; err != nil {
		return nil, translateError(err, "contact", "list")
	}
	return contacts, nil
}

func (repo *ContactRepositoryDatabase) MarkAnswered(ctx context.Context, id string) error {
	var c contact.Contact
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return translateError(err, "contact", id)
	}
	err := repo.db.WithContext(ctx).
		Model(&contact.Contact{}).
		Where("id = ?", id).
		Update("is_answered", true).Error
	return translateError(err, "contact", id)
}
