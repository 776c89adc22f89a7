package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"pipoca/internal/fileutil"
	"pipoca/internal/logging"
	"pipoca/internal/textutil"
)

// Person photo roles used in profile image file names.
const (
	RoleDirector = "director"
	RoleCast     = "cast"
)

const (
	posterDirName   = "poster_images"
	backdropDirName = "backdrop_images"
	profileDirName  = "profile_images"
)

// Cache downloads poster, backdrop, and person-profile images into a local
// directory tree addressed by remote ID. Downloads are idempotent per ID and
// every failure degrades to "absent" rather than an error: a missing image
// is an expected outcome for the caller.
type Cache struct {
	root   string
	client *resty.Client
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTimeout overrides the default per-download timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Cache) {
		if timeout > 0 {
			c.client.SetTimeout(timeout)
		}
	}
}

// New creates an asset cache rooted at root.
func New(root string, logger *slog.Logger, opts ...Option) *Cache {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	cache := &Cache{
		root:   root,
		client: client,
		logger: logging.NewComponentLogger(logger, "assets"),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// PosterPath returns the local path a movie poster is cached under.
func (c *Cache) PosterPath(remoteID int64) string {
	return filepath.Join(c.root, posterDirName, fmt.Sprintf("%d.jpg", remoteID))
}

// BackdropPath returns the local path a movie backdrop is cached under.
func (c *Cache) BackdropPath(remoteID int64) string {
	return filepath.Join(c.root, backdropDirName, fmt.Sprintf("%d_backdrop.jpg", remoteID))
}

// ProfilePath returns the local path a person photo is cached under.
func (c *Cache) ProfilePath(personID int64, role string) string {
	return filepath.Join(c.root, profileDirName, fmt.Sprintf("%s_%d.jpg", textutil.SanitizeToken(role), personID))
}

// DownloadPoster fetches the poster image for a movie. Returns the local
// path and true on success or an existing cached copy, "" and false
// otherwise.
func (c *Cache) DownloadPoster(ctx context.Context, imageURL string, remoteID int64) (string, bool) {
	return c.download(ctx, []string{imageURL}, c.PosterPath(remoteID), "poster")
}

// DownloadBackdrop fetches the backdrop image for a movie, trying each URL
// in order (high-resolution variant first).
func (c *Cache) DownloadBackdrop(ctx context.Context, imageURLs []string, remoteID int64) (string, bool) {
	return c.download(ctx, imageURLs, c.BackdropPath(remoteID), "backdrop")
}

// DownloadPersonPhoto fetches the profile image for a cast or crew member.
func (c *Cache) DownloadPersonPhoto(ctx context.Context, imageURL string, personID int64, role string) (string, bool) {
	return c.download(ctx, []string{imageURL}, c.ProfilePath(personID, role), "profile")
}

func (c *Cache) download(ctx context.Context, urls []string, localPath, kind string) (string, bool) {
	if _, err := os.Stat(localPath); err == nil {
		return localPath, true
	}

	for _, imageURL := range urls {
		if imageURL == "" {
			continue
		}
		resp, err := c.client.R().SetContext(ctx).Get(imageURL)
		if err != nil {
			c.logger.Debug("image download failed",
				logging.String("kind", kind),
				logging.String("url", imageURL),
				logging.Error(err))
			continue
		}
		if !resp.IsSuccess() {
			c.logger.Debug("image download rejected",
				logging.String("kind", kind),
				logging.String("url", imageURL),
				logging.Int("status", resp.StatusCode()))
			continue
		}
		if err := fileutil.WriteFileAtomic(localPath, resp.Body(), 0o644); err != nil {
			c.logger.Warn("persist image failed",
				logging.String(logging.FieldEventType, "asset_write_failed"),
				logging.String("kind", kind),
				logging.String("path", localPath),
				logging.Error(err))
			return "", false
		}
		return localPath, true
	}
	return "", false
}
