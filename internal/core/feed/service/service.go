// Package feedapp builds the paginated post listings: the global index, group
// feeds, author profiles, the follow feed and the post detail page.
package feedapp

import (
	"context"
	"fmt"

	"inkwell/internal/core/pagination"
	commentPort "inkwell/internal/ports/comment"
	followPort "inkwell/internal/ports/follow"
	groupPort "inkwell/internal/ports/group"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"
)

type FeedService struct {
	PostRepository    postPort.PostRepository
	GroupRepository   groupPort.GroupRepository
	UserRepository    userPort.UserRepository
	CommentRepository commentPort.CommentRepository
	FollowRepository  followPort.FollowRepository
	MediaURL          func(path string) string
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	commentRepo commentPort.CommentRepository,
	followRepo followPort.FollowRepository,
	mediaURL func(path string) string,
) *FeedService {
	return &FeedService{
		PostRepository:    postRepo,
		GroupRepository:   groupRepo,
		UserRepository:    userRepo,
		CommentRepository: commentRepo,
		FollowRepository:  followRepo,
		MediaURL:          mediaURL,
	}
}

// ListAll is the global feed.
func (s *FeedService) ListAll(ctx context.Context, page int) (*postPort.PageDTO, error) {
	return s.listPage(ctx, postPort.PostFilter{}, page)
}

func (s *FeedService) ListByGroup(ctx context.Context, slug string, page int) (*postPort.GroupFeedDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p, err := s.listPage(ctx, postPort.PostFilter{GroupID: g.ID.String()}, page)
	if err != nil {
		return nil, err
	}
	return &postPort.GroupFeedDTO{Group: groupPort.NewGroupDTO(g), Page: p}, nil
}

// ListByAuthor is the profile page of username. viewerID may be empty; when
// set, Following tells whether the viewer follows the author.
func (s *FeedService) ListByAuthor(ctx context.Context, username, viewerID string, page int) (*postPort.ProfileDTO, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.listPage(ctx, postPort.PostFilter{AuthorID: author.ID.String()}, page)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" && viewerID != author.ID.String() {
		if following, err = s.FollowRepository.Exists(ctx, viewerID, author.ID.String()); err != nil {
			return nil, err
		}
	}

	return &postPort.ProfileDTO{
		Author:     userPort.NewUserDTO(author),
		PostsCount: p.Count,
		Following:  following,
		Page:       p,
	}, nil
}

// PostDetail returns one post with its author's post count and its comments.
func (s *FeedService) PostDetail(ctx context.Context, postID string) (*postPort.PostDetailDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.PostRepository.Count(ctx, postPort.PostFilter{AuthorID: p.AuthorID.String()})
	if err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}
	comments, err := s.CommentRepository.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}

	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.NewCommentDTO(c))
	}
	return &postPort.PostDetailDTO{
		Post:       postPort.NewPostDTO(p, s.MediaURL),
		PostsCount: count,
		Comments:   dtos,
	}, nil
}

// ListFollowed returns posts by the authors userID follows.
func (s *FeedService) ListFollowed(ctx context.Context, userID string, page int) (*postPort.PageDTO, error) {
	return s.listPage(ctx, postPort.PostFilter{FollowerID: userID}, page)
}

func (s *FeedService) listPage(ctx context.Context, filter postPort.PostFilter, requested int) (*postPort.PageDTO, error) {
	count, err := s.PostRepository.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}
	page := pagination.Paginate(requested, count)
	if count == 0 {
		return postPort.NewPageDTO(page, nil), nil
	}

	posts, err := s.PostRepository.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, postPort.NewPostDTO(p, s.MediaURL))
	}
	return postPort.NewPageDTO(page, dtos), nil
}
