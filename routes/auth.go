package routes

import (
	"errors"
	"net/http"

	"tasktrail/tasktrail/services"
	"tasktrail/tasktrail/utils/token"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authService services.AuthServiceInterface) {
	router.GET("/login", func(c *gin.Context) { LoginPage(c, authService) })
	router.POST("/login", func(c *gin.Context) { Login(c, authService) })
	router.POST("/logout", Logout)
}

func LoginPage(c *gin.Context, authService services.AuthServiceInterface) {
	// Already authed sessions go straight to the list.
	if tokenString, err := token.ExtractToken(c); err == nil {
		if _, err := authService.ValidateToken(tokenString); err == nil {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": takeFlash(c),
	})
}

func Login(c *gin.Context, authService services.AuthServiceInterface) {
	password := c.PostForm("password")

	tokenString, err := authService.Login(password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			setFlash(c, "error", "Wrong password.")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.SetCookie(token.SessionCookie, tokenString, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func Logout(c *gin.Context) {
	c.SetCookie(token.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
