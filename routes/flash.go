package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "tasktrail_flash"

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// setFlash stores a flash message in a short-lived cookie, read and
// cleared by the next page render.
func setFlash(c *gin.Context, kind, message string) {
	c.SetCookie(flashCookie, kind+"|"+message, 60, "/", "", false, true)
}

// takeFlash pops the pending flash message, if any.
func takeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Kind: parts[0], Message: parts[1]}
}
