package contactapp

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/config"
	contactEntity "inkwell/internal/core/contact"
	"inkwell/internal/core/validation"
	contactPort "inkwell/internal/ports/contact"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type contactInput struct {
	Name    string `form:"name" validate:"notblank,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Subject string `form:"subject" validate:"notblank,max=100"`
	Body    string `form:"body" validate:"notblank"`
}

// ContactService handles support requests sent through the contact form.
type ContactService struct {
	ContactRepository contactPort.ContactRepository
}

func NewContactService(repo contactPort.ContactRepository) *ContactService {
	return &ContactService{ContactRepository: repo}
}

func (s *ContactService) Submit(ctx context.Context, name, email, subject, body string) (*contactPort.ContactDTO, error) {
	in := contactInput{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.ContactRepository.Create(ctx, &contactEntity.Contact{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Body:    in.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	config.Logger.Info("Contact request received", zap.String("contactID", c.ID.String()), zap.String("subject", c.Subject))
	return contactPort.NewContactDTO(c), nil
}

func (s *ContactService) ListContacts(ctx context.Context, onlyUnanswered bool) ([]*contactPort.ContactDTO, error) {
	contacts, err := s.ContactRepository.List(ctx, onlyUnanswered)
	if err != nil {
		return nil, err
	}
	dtos := make([]*contactPort.ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		dtos = append(dtos, contactPort.NewContactDTO(c))
	}
	return dtos, nil
}

func (s *ContactService) MarkAnswered(ctx context.Context, id string) error {
	return s.ContactRepository.MarkAnswered(ctx, id)
}
