package commentapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	commentEntity "inkwell/internal/core/comment"
	"inkwell/internal/core/validation"
	commentPort "inkwell/internal/ports/comment"
	postPort "inkwell/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type commentInput struct {
	Text string `form:"text" validate:"notblank"`
}

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	Now               func() time.Time
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		Now:               time.Now,
	}
}

// AddComment attaches a comment by authorID to an existing post.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID, text string) (*commentPort.CommentDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, apperror.NewForbiddenError("login required")
	}
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := validation.Struct(commentInput{Text: text}); err != nil {
		return nil, err
	}

	c := &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		PostID:   p.ID,
		AuthorID: uid,
		Text:     text,
		Created:  s.Now(),
	}
	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	config.Logger.Info("Comment added", zap.String("postID", postID), zap.String("authorID", authorID))

	return commentPort.NewCommentDTO(created), nil
}

// ListByPost returns the comments under a post, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.NewCommentDTO(c))
	}
	return dtos, nil
}
