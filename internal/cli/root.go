package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	apperrors "github.com/julianstephens/journeyline/internal/errors"
	"github.com/julianstephens/journeyline/internal/guidance"
	"github.com/julianstephens/journeyline/internal/journey"
	"github.com/julianstephens/journeyline/internal/knowledge"
	"github.com/julianstephens/journeyline/internal/logger"
	"github.com/julianstephens/journeyline/internal/models"
	"github.com/julianstephens/journeyline/internal/router"
	"github.com/julianstephens/journeyline/internal/session"
	"github.com/julianstephens/journeyline/internal/storage"
)

// Context is shared by every command
type Context struct {
	Store    storage.Provider
	KB       *knowledge.Base
	Engine   *journey.Engine
	Guidance *guidance.Selector
	Router   *router.Router
	Saver    session.Saver

	// UserID overrides the current user stored in settings
	UserID string
	// Out receives command output; nil means stdout
	Out io.Writer
	// Now is the clock; nil means time.Now
	Now func() time.Time

	session *session.Session
}

// NewContext wires the engine components around a knowledge base.
func NewContext(store storage.Provider, kb *knowledge.Base, saver session.Saver) (*Context, error) {
	r, err := router.New(kb)
	if err != nil {
		return nil, fmt.Errorf("failed to build question router: %w", err)
	}
	return &Context{
		Store:    store,
		KB:       kb,
		Engine:   journey.New(kb),
		Guidance: guidance.New(kb),
		Router:   r,
		Saver:    saver,
	}, nil
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// CurrentUser resolves the user id: the --user flag, else the id stored
// in settings.
func (c *Context) CurrentUser() (string, error) {
	if c.UserID != "" {
		return c.UserID, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to read settings: %w", err)
	}
	if settings.CurrentUser == "" {
		return "", apperrors.NewUserError("no current user", "run 'journeyline init' or pass --user")
	}
	c.UserID = settings.CurrentUser
	return c.UserID, nil
}

// Session loads the current user's profile on first use.
func (c *Context) Session() (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	userID, err := c.CurrentUser()
	if err != nil {
		return nil, err
	}
	s, err := session.Load(c.Store, userID, c.Engine, c.Saver)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if c.Now != nil {
		s.WithClock(c.Now)
	}
	logger.Debug("Loaded session", "user", userID)
	c.session = s
	return s, nil
}

// Jurisdiction canonicalizes a user-typed jurisdiction name. Unknown names
// pass through unchanged so the engine can reject them with a hint.
func (c *Context) Jurisdiction(name string) string {
	if canonical, ok := c.KB.LookupJurisdiction(name); ok {
		return canonical
	}
	return name
}

// StartedProfile returns the current profile, or a user error when no
// journey has begun.
func (c *Context) StartedProfile() (models.UserProfile, error) {
	s, err := c.Session()
	if err != nil {
		return models.UserProfile{}, err
	}
	p := s.Profile()
	if !p.Started() {
		return p, apperrors.NewUserError("no journey started yet", "run 'journeyline init --interactive' or 'journeyline profile set --role ...'")
	}
	return p, nil
}
