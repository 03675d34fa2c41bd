package post

import (
	"context"
	"io"
	"time"

	"inkwell/internal/core/pagination"
	"inkwell/internal/core/post"
	groupPort "inkwell/internal/ports/group"
	userPort "inkwell/internal/ports/user"
)

// PostFilter narrows a listing. Empty fields are ignored; FollowerID keeps
// only posts whose author is followed by that user.
type PostFilter struct {
	AuthorID   string
	GroupID    string
	FollowerID string
}

// PostRepository stores and loads posts. Loaded posts carry Author and Group.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	Update(ctx context.Context, post *post.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*post.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
}

// ImageUpload is an uploaded image as received from a form.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// DTOs for use cases
type PostDTO struct {
	ID       string              `json:"id"`
	Text     string              `json:"text"`
	Label    string              `json:"label"`
	Created  time.Time           `json:"created"`
	AuthorID string              `json:"author_id"`
	Author   *userPort.UserDTO   `json:"author,omitempty"`
	Group    *groupPort.GroupDTO `json:"group,omitempty"`
	Image    string              `json:"image,omitempty"`
	ImageURL string              `json:"image_url,omitempty"`
}

// NewPostDTO maps a loaded post; mediaURL turns the stored image path into a public URL.
func NewPostDTO(p *post.Post, mediaURL func(string) string) *PostDTO {
	dto := &PostDTO{
		ID:       p.ID.String(),
		Text:     p.Text,
		Label:    p.Label(),
		Created:  p.Created,
		AuthorID: p.AuthorID.String(),
		Group:    groupPort.NewGroupDTO(p.Group),
		Image:    p.Image,
	}
	if p.Author.Username != "" {
		dto.Author = userPort.NewUserDTO(&p.Author)
	}
	if p.Image != "" && mediaURL != nil {
		dto.ImageURL = mediaURL(p.Image)
	}
	return dto
}

// PageDTO is one page of a post listing.
type PageDTO struct {
	Posts       []*PostDTO `json:"posts"`
	Number      int        `json:"number"`
	NumPages    int        `json:"num_pages"`
	Count       int64      `json:"count"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
}

func NewPageDTO(page pagination.Page, posts []*PostDTO) *PageDTO {
	if posts == nil {
		posts = []*PostDTO{}
	}
	return &PageDTO{
		Posts:       posts,
		Number:      page.Number,
		NumPages:    page.NumPages,
		Count:       page.Count,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
	}
}
