package post

import (
	commentPort "inkwell/internal/ports/comment"
	groupPort "inkwell/internal/ports/group"
	userPort "inkwell/internal/ports/user"
)

// IndexDTO is the payload of the global feed.
type IndexDTO struct {
	Page *PageDTO `json:"page_obj"`
}

type GroupFeedDTO struct {
	Group *groupPort.GroupDTO `json:"group"`
	Page  *PageDTO            `json:"page_obj"`
}

// ProfileDTO is an author's page; PostsCount covers all of the author's posts.
type ProfileDTO struct {
	Author     *userPort.UserDTO `json:"author"`
	PostsCount int64             `json:"posts_count"`
	Following  bool              `json:"following"`
	Page       *PageDTO          `json:"page_obj"`
}

type PostDetailDTO struct {
	Post       *PostDTO                  `json:"post"`
	PostsCount int64                     `json:"posts_count"`
	Comments   []*commentPort.CommentDTO `json:"comments"`
}
