package middleware

import (
	"fmt"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	sessionKeyDisplay  = "uploaded_image"
	sessionKeyOriginal = "original_file"
	flowStateLocal     = "flow_state"
)

// FlowState is what the upload step hands to the review steps: the file shown in
// the browser and the file sent for analysis.
type FlowState struct {
	DisplayFile  string
	OriginalFile string
}

func (s FlowState) Valid() bool {
	return s.DisplayFile != "" && s.OriginalFile != ""
}

type FlowSessions struct {
	store *session.Store
}

// NewFlowSessions builds the session store. A nil storage keeps sessions in memory.
func NewFlowSessions(cfg *config.SessionConfig, storage fiber.Storage) *FlowSessions {
	return &FlowSessions{
		store: session.New(session.Config{
			Expiration:     cfg.Expiration,
			Storage:        storage,
			KeyLookup:      "cookie:cv_session",
			CookieSecure:   cfg.CookieSecure,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
			KeyGenerator:   uuid.NewString,
		}),
	}
}

func (f *FlowSessions) Load(c *fiber.Ctx) (FlowState, error) {
	sess, err := f.store.Get(c)
	if err != nil {
		return FlowState{}, fmt.Errorf("failed to load session: %w", err)
	}
	display, _ := sess.Get(sessionKeyDisplay).(string)
	original, _ := sess.Get(sessionKeyOriginal).(string)
	return FlowState{DisplayFile: display, OriginalFile: original}, nil
}

// Save replaces whatever an earlier upload left in the session.
func (f *FlowSessions) Save(c *fiber.Ctx, state FlowState) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(sessionKeyDisplay, state.DisplayFile)
	sess.Set(sessionKeyOriginal, state.OriginalFile)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// RequireUpload sends visitors without an upload back to the upload form and hands
// the flow state of everyone else to the next handler.
func (f *FlowSessions) RequireUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := f.Load(c)
		if err != nil {
			return err
		}
		if !state.Valid() {
			return c.Redirect("/")
		}
		c.Locals(flowStateLocal, state)
		return c.Next()
	}
}

// FlowStateFrom returns the state stored by RequireUpload.
func FlowStateFrom(c *fiber.Ctx) FlowState {
	state, _ := c.Locals(flowStateLocal).(FlowState)
	return state
}
