package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

const communityPath = "/community"

type CommunityHTTP struct {
	Svc *service.CommunityService
}

func threadPath(id uuid.UUID) string {
	return communityPath + "/" + id.String()
}

// returnTo keeps redirects inside the community pages.
func returnTo(c echo.Context) string {
	p := formValue(c, "returnTo")
	if p == communityPath || (strings.HasPrefix(p, communityPath+"/") && !strings.Contains(p, "//")) {
		return p
	}
	return communityPath
}

func (h *CommunityHTTP) Feed(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	posts, err := h.Svc.Feed(ctx, userID)
	if err != nil {
		return err
	}
	return render(c, "community", "Community", posts)
}

func (h *CommunityHTTP) Thread(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}

	thread, err := h.Svc.Thread(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return render(c, "post", "Post", thread)
}

func (h *CommunityHTTP) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "community.create_post")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if _, err := h.Svc.CreatePost(ctx, userID, c.FormValue("content")); err != nil {
		return fail(c, l, "create_post_error", communityPath, err, false)
	}
	return back(c, communityPath)
}

func (h *CommunityHTTP) ToggleLike(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "community.toggle_like")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	target := returnTo(c)
	liked, err := h.Svc.ToggleLike(ctx, userID, formUUID(c, "postId"))
	if err != nil {
		return fail(c, l, "toggle_like_error", target, err, false)
	}
	l.Debug("like_toggled", "liked", liked)
	return back(c, target)
}

func (h *CommunityHTTP) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "community.create_comment")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID := formUUID(c, "postId")
	target := communityPath
	if postID != uuid.Nil {
		target = threadPath(postID)
	}
	if _, err := h.Svc.CreateComment(ctx, userID, postID, c.FormValue("content")); err != nil {
		return fail(c, l, "create_comment_error", target, err, false)
	}
	return back(c, target)
}
