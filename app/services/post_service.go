package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gazette/app/models"
	"gazette/app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostListOptions narrows the post list the way the press admin does:
// a substring search over title and author, exact filters on author and
// status, and a created-after cutoff.
type PostListOptions struct {
	Search       string
	Author       string
	Status       string
	CreatedAfter time.Time
	Page         int
	PerPage      int
}

// PostService handles business logic for press posts
type PostService struct {
	postRepo repositories.PostRepository
	tagRepo  repositories.TagRepository
	mediaDir string
	log      *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, tagRepo repositories.TagRepository, mediaDir string, log *zap.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		mediaDir: mediaDir,
		log:      log,
	}
}

// CreatePost creates a new post with validation, persisting its tags
func (s *PostService) CreatePost(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return err
	}
	for _, tag := range post.Tags {
		tag.PostID = post.ID
		if err := tag.Validate(); err != nil {
			return fmt.Errorf("invalid tag: %w", err)
		}
		if err := s.tagRepo.Create(tag); err != nil {
			return fmt.Errorf("failed to save tag: %w", err)
		}
	}

	s.log.Info("post created", zap.Int("id", post.ID), zap.String("title", post.Title))
	return nil
}

// GetPost retrieves a post by ID with its tags
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	post.Tags = tags

	return post, nil
}

// ListPosts retrieves a filtered, paginated list of posts
func (s *PostService) ListPosts(opts PostListOptions) ([]*models.Post, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = 10
	}

	all, err := s.postRepo.List(-1, 0)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Post, 0, len(all))
	for _, post := range all {
		if !matchesPost(post, opts) {
			continue
		}
		filtered = append(filtered, post)
	}

	start := (opts.Page - 1) * opts.PerPage
	if start >= len(filtered) {
		return []*models.Post{}, nil
	}
	end := start + opts.PerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[start:end]

	for _, post := range page {
		tags, err := s.tagRepo.ListByPost(post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tags for post %d: %w", post.ID, err)
		}
		post.Tags = tags
	}
	return page, nil
}

func matchesPost(post *models.Post, opts PostListOptions) bool {
	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Author), needle) {
			return false
		}
	}
	if opts.Author != "" && post.Author != opts.Author {
		return false
	}
	if opts.Status != "" && post.Status != opts.Status {
		return false
	}
	if !opts.CreatedAfter.IsZero() && !post.CreatedAt.After(opts.CreatedAfter) {
		return false
	}
	return true
}

// UpdatePost updates an existing post with validation
func (s *PostService) UpdatePost(post *models.Post) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	// Creation time and image survive edits.
	post.CreatedAt = existing.CreatedAt
	if post.Image == "" {
		post.Image = existing.Image
	}
	post.BeforeUpdate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Update(post)
}

// DeletePost deletes a post and all its tags
func (s *PostService) DeletePost(id int) error {
	deleted, err := s.tagRepo.DeleteByPost(id)
	if err != nil {
		return fmt.Errorf("failed to delete tags: %w", err)
	}
	if err := s.postRepo.Delete(id); err != nil {
		return err
	}
	s.log.Info("post deleted", zap.Int("id", id), zap.Int("tags_removed", deleted))
	return nil
}

// AttachImage stores an uploaded image in the media directory under a
// fresh UUID name and records it on the post.
func (s *PostService) AttachImage(id int, filename string, src io.Reader) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	stored := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dst, err := os.Create(filepath.Join(s.mediaDir, stored))
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	post.Image = stored
	post.BeforeUpdate()
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	s.log.Info("image attached", zap.Int("post", post.ID), zap.String("file", stored))
	return post, nil
}
