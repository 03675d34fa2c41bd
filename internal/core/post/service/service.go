package postapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	postEntity "inkwell/internal/core/post"
	"inkwell/internal/core/validation"
	groupPort "inkwell/internal/ports/group"
	mediaPort "inkwell/internal/ports/media"
	postPort "inkwell/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const imageDir = "posts"

type postInput struct {
	Text string `form:"text" validate:"notblank"`
}

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	MediaStorage    mediaPort.MediaStorage
	MaxUploadBytes  int64
	Now             func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	storage mediaPort.MediaStorage,
	maxUploadBytes int64,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		MediaStorage:    storage,
		MaxUploadBytes:  maxUploadBytes,
		Now:             time.Now,
	}
}

// CreatePost stores a new post by authorID. groupSlug and image are optional.
func (s *PostService) CreatePost(ctx context.Context, authorID, text, groupSlug string, image *postPort.ImageUpload) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, apperror.NewForbiddenError("login required")
	}
	text = strings.TrimSpace(text)
	if err := validation.Struct(postInput{Text: text}); err != nil {
		return nil, err
	}
	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		Created:  s.Now(),
		AuthorID: uid,
		GroupID:  groupID,
	}
	if image != nil {
		if p.Image, err = s.storeImage(ctx, image); err != nil {
			return nil, err
		}
	}

	if _, err := s.PostRepository.Create(ctx, p); err != nil {
		s.dropImage(ctx, p.Image)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	config.Logger.Info("Post created", zap.String("postID", p.ID.String()), zap.String("authorID", authorID))

	return s.load(ctx, p.ID.String())
}

// GetPostForEdit returns the post only when editorID wrote it.
func (s *PostService) GetPostForEdit(ctx context.Context, editorID, postID string) (*postPort.PostDTO, error) {
	p, err := s.ownedPost(ctx, editorID, postID)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p, s.MediaStorage.URL), nil
}

// EditPost replaces text and group of an existing post. An empty groupSlug
// clears the group; a nil image keeps the stored one.
func (s *PostService) EditPost(ctx context.Context, editorID, postID, text, groupSlug string, image *postPort.ImageUpload) (*postPort.PostDTO, error) {
	p, err := s.ownedPost(ctx, editorID, postID)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := validation.Struct(postInput{Text: text}); err != nil {
		return nil, err
	}
	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	oldImage := p.Image
	p.Text = text
	p.GroupID = groupID
	if image != nil {
		if p.Image, err = s.storeImage(ctx, image); err != nil {
			return nil, err
		}
	}

	if err := s.PostRepository.Update(ctx, p); err != nil {
		if p.Image != oldImage {
			s.dropImage(ctx, p.Image)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if p.Image != oldImage {
		s.dropImage(ctx, oldImage)
	}

	return s.load(ctx, postID)
}

// DeletePost removes the post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, editorID, postID string) error {
	p, err := s.ownedPost(ctx, editorID, postID)
	if err != nil {
		return err
	}
	if err := s.PostRepository.Delete(ctx, postID); err != nil {
		return err
	}
	s.dropImage(ctx, p.Image)
	config.Logger.Info("Post deleted", zap.String("postID", postID))
	return nil
}

func (s *PostService) ownedPost(ctx context.Context, editorID, postID string) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != editorID {
		config.Logger.Warn("Edit refused", zap.String("postID", postID), zap.String("userID", editorID))
		return nil, apperror.NewForbiddenError("only the author can change this post")
	}
	return p, nil
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uuid.UUID, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if apperror.IsNotFound(err) {
		return nil, apperror.NewValidationError("group", "select a valid choice")
	}
	if err != nil {
		return nil, err
	}
	return &g.ID, nil
}

// storeImage checks that the upload is an image within the size limit and
// saves it under posts/.
func (s *PostService) storeImage(ctx context.Context, image *postPort.ImageUpload) (string, error) {
	limit := s.MaxUploadBytes
	data, err := io.ReadAll(io.LimitReader(image.Content, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return "", apperror.NewValidationError("image", "the submitted file is empty")
	}
	if int64(len(data)) > limit {
		return "", apperror.NewValidationError("image", fmt.Sprintf("file is larger than %d bytes", limit))
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return "", apperror.NewValidationError("image", "upload a valid image")
	}

	path, err := s.MediaStorage.Save(ctx, imageDir, image.Filename, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return path, nil
}

func (s *PostService) dropImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.MediaStorage.Delete(ctx, path); err != nil {
		config.Logger.Warn("Could not remove image", zap.String("path", path), zap.Error(err))
	}
}

func (s *PostService) load(ctx context.Context, postID string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p, s.MediaStorage.URL), nil
}
