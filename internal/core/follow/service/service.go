package followapp

import (
	"context"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	followEntity "inkwell/internal/core/follow"
	followPort "inkwell/internal/ports/follow"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowService struct {
	FollowRepository followPort.FollowRepository
	UserRepository   userPort.UserRepository
}

func NewFollowService(followRepo followPort.FollowRepository, userRepo userPort.UserRepository) *FollowService {
	return &FollowService{
		FollowRepository: followRepo,
		UserRepository:   userRepo,
	}
}

// Follow makes followerID follow authorUsername. Following yourself or an
// author you already follow changes nothing.
func (s *FollowService) Follow(ctx context.Context, followerID, authorUsername string) error {
	uid, err := uuid.FromString(followerID)
	if err != nil {
		return apperror.NewForbiddenError("login required")
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	if author.ID == uid {
		config.Logger.Debug("Ignoring self follow", zap.String("userID", followerID))
		return nil
	}

	exists, err := s.FollowRepository.Exists(ctx, followerID, author.ID.String())
	if err != nil {
		return fmt.Errorf("checking follow: %w", err)
	}
	if exists {
		return nil
	}

	_, err = s.FollowRepository.Create(ctx, &followEntity.Follow{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   uid,
		AuthorID: author.ID,
	})
	if apperror.IsConflict(err) {
		// lost a race with an identical request
		return nil
	}
	if apperror.IsDangling(err) {
		config.Logger.Warn("Follower no longer exists", zap.String("userID", followerID))
	}
	if err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}
	config.Logger.Info("User followed", zap.String("userID", followerID), zap.String("author", authorUsername))
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, authorUsername string) error {
	if _, err := uuid.FromString(followerID); err != nil {
		return apperror.NewForbiddenError("login required")
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	return s.FollowRepository.Delete(ctx, followerID, author.ID.String())
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	if followerID == "" || followerID == authorID {
		return false, nil
	}
	return s.FollowRepository.Exists(ctx, followerID, authorID)
}
