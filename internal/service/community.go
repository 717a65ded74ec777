package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/metrics"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
)

const (
	feedLimit      = 50
	adminPostLimit = 20
)

type CommunityService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

type FeedPost struct {
	models.Post
	Likes int64
	Liked bool
}

type PostThread struct {
	FeedPost
	Comments []models.Comment
}

func postPaths(id uuid.UUID) []string {
	return []string{"/community", "/community/" + id.String(), "/admin"}
}

func (s *CommunityService) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("Post content is required")
	}
	p := models.Post{UserID: userID, Content: content}
	if err := s.Repo.CreatePost(ctx, &p); err != nil {
		logging.FromContext(ctx).Error("create_post_error", "error", err)
		return nil, storage("create post", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.PostCreated, UserID: userID.String(), Paths: postPaths(p.ID)})
	return &p, nil
}

// ToggleLike flips the caller's like and reports the resulting state.
func (s *CommunityService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if postID == uuid.Nil {
		return false, invalid("Missing post")
	}
	liked, err := s.Repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, storage("toggle like", err)
	}
	metrics.LikeToggled(liked)
	publish(ctx, s.Events, events.Event{Type: events.LikeToggled, UserID: userID.String(), Paths: postPaths(postID)})
	return liked, nil
}

func (s *CommunityService) CreateComment(ctx context.Context, userID, postID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if postID == uuid.Nil || content == "" {
		return nil, invalid("Comment content is required")
	}
	c := models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.Repo.CreateComment(ctx, &c); err != nil {
		logging.FromContext(ctx).Error("create_comment_error", "post_id", postID, "error", err)
		return nil, storage("create comment", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.CommentCreated, UserID: userID.String(), Paths: postPaths(postID)})
	return &c, nil
}

// DeletePost is moderation; unknown ids are a no-op.
func (s *CommunityService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	if err := s.Repo.DeletePost(ctx, postID); err != nil {
		return storage("delete post", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.PostDeleted, Paths: postPaths(postID)})
	return nil
}

// Feed returns the newest posts with like counts and the viewer's own likes.
func (s *CommunityService) Feed(ctx context.Context, viewer uuid.UUID) ([]FeedPost, error) {
	return s.feed(ctx, viewer, feedLimit)
}

func (s *CommunityService) Recent(ctx context.Context) ([]models.Post, error) {
	out, err := s.Repo.RecentPosts(ctx, adminPostLimit)
	return out, storage("list posts", err)
}

func (s *CommunityService) feed(ctx context.Context, viewer uuid.UUID, limit int) ([]FeedPost, error) {
	posts, err := s.Repo.RecentPosts(ctx, limit)
	if err != nil {
		return nil, storage("list posts", err)
	}
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	liked, err := s.Repo.LikedPostIDs(ctx, viewer, ids)
	if err != nil {
		return nil, storage("list likes", err)
	}
	counts, err := s.Repo.LikeCounts(ctx, ids)
	if err != nil {
		return nil, storage("count likes", err)
	}

	out := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, FeedPost{Post: p, Likes: counts[p.ID], Liked: liked[p.ID]})
	}
	return out, nil
}

func (s *CommunityService) Thread(ctx context.Context, viewer, postID uuid.UUID) (*PostThread, error) {
	p, err := s.Repo.PostByID(ctx, postID)
	if err != nil {
		return nil, storage("find post", err)
	}
	comments, err := s.Repo.Comments(ctx, postID)
	if err != nil {
		return nil, storage("list comments", err)
	}
	ids := []uuid.UUID{postID}
	liked, err := s.Repo.LikedPostIDs(ctx, viewer, ids)
	if err != nil {
		return nil, storage("list likes", err)
	}
	counts, err := s.Repo.LikeCounts(ctx, ids)
	if err != nil {
		return nil, storage("count likes", err)
	}
	return &PostThread{
		FeedPost: FeedPost{Post: *p, Likes: counts[postID], Liked: liked[postID]},
		Comments: comments,
	}, nil
}
