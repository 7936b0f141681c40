package main

import (
	"net/http"

	"foliohub/pkg/storage"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), recovery(), corsMiddleware(cfg.CORS.Origins))
	setupRoutes(r)
	return r
}

func setupRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// local driver serves its own objects
	if ls, ok := store.(*storage.LocalStore); ok {
		r.Static(cfg.Upload.PublicURL, ls.BaseDir())
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", registerHandler)
		auth.POST("/admin/register", registerHandler)
		auth.POST("/login", loginHandler)
		auth.GET("/portfolio/default", defaultPortfolioHandler)
		auth.GET("/portfolio/:username", getPortfolioHandler)
		auth.GET("/portfolios/public", publicPortfoliosHandler)

		authed := auth.Group("", requireAuth())
		authed.GET("/me", meHandler)
		authed.GET("/verify", verifyHandler)
		authed.POST("/logout", logoutHandler)
		authed.PUT("/portfolio/update", updatePortfolioHandler)
		authed.DELETE("/account", deleteAccountHandler)

		admin := auth.Group("", requireAuth(), requireAdmin())
		admin.PUT("/set-default/:username", setDefaultPortfolioHandler)
	}

	projects := r.Group("/projects")
	{
		projects.GET("/user/:username", listProjectsByUsernameHandler)
		authed := projects.Group("", requireAuth())
		authed.GET("", listOwnProjectsHandler)
		authed.POST("", createProjectHandler)
		authed.POST("/upload", uploadProjectThumbnailHandler)
		authed.PUT("/:id", updateProjectHandler)
		authed.DELETE("/:id", deleteProjectHandler)
	}

	images := r.Group("/images")
	{
		images.GET("/user/:username", listImagesByUsernameHandler)
		authed := images.Group("", requireAuth())
		authed.GET("", listOwnImagesHandler)
		authed.POST("/upload", uploadImageHandler)
		authed.POST("/profile", uploadProfilePictureHandler)
		authed.PUT("/:id", updateImageHandler)
		authed.DELETE("/:id", deleteImageHandler)
	}

	music := r.Group("/music")
	{
		music.GET("/user/:username", listMusicByUsernameHandler)
		authed := music.Group("", requireAuth())
		authed.GET("", listOwnMusicHandler)
		authed.POST("/upload", uploadMusicHandler)
		authed.PUT("/:id", updateMusicHandler)
		authed.PUT("/:id/default", setDefaultMusicHandler)
		authed.DELETE("/:id", deleteMusicHandler)
	}

	skills := r.Group("/skills")
	{
		skills.GET("/user/:username", listSkillsByUsernameHandler)
		authed := skills.Group("", requireAuth())
		authed.GET("", listOwnSkillsHandler)
		authed.POST("", createSkillHandler)
		authed.PUT("/:id", updateSkillHandler)
		authed.DELETE("/:id", deleteSkillHandler)
	}

	cv := r.Group("/cv")
	{
		cv.GET("/user/:username", getActiveCVHandler)
		authed := cv.Group("", requireAuth())
		authed.GET("", listOwnCVsHandler)
		authed.POST("/upload", uploadCVHandler)
		authed.PUT("/:id", updateCVHandler)
		authed.PUT("/:id/activate", activateCVHandler)
		authed.DELETE("/:id", deleteCVHandler)
	}

	contact := r.Group("/contact")
	{
		contact.POST("/:username", submitContactHandler)
		authed := contact.Group("", requireAuth())
		authed.GET("", listContactsHandler)
		authed.DELETE("/:id", deleteContactHandler)
	}

	analytics := r.Group("/analytics")
	{
		analytics.POST("/track", trackHandler)
		admin := analytics.Group("", requireAuth(), requireAdmin())
		admin.GET("/dashboard", dashboardHandler)
		admin.GET("/realtime", realtimeHandler)
		admin.PATCH("/contacts/:id/status", updateContactStatusHandler)
	}
}
