package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sarvcast/sarvcast-backend/controllers"
	"github.com/sarvcast/sarvcast-backend/middleware"
	"github.com/sarvcast/sarvcast-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Public browsing and playback queries. OptionalAuth lets editors see
	// drafts with the same endpoints.
	public := api.Group("")
	{
		public.Use(middleware.OptionalAuthMiddleware(), middleware.DBMiddleware(db))

		public.GET("/stories", controllers.GetStories)
		public.GET("/stories/:id", controllers.GetStoryDetail)
		public.GET("/stories/:id/characters", controllers.GetStoryCharacters)
		public.GET("/stories/:id/ratings", controllers.GetStoryRatings)
		public.GET("/categories", controllers.GetCategories)
		public.GET("/tags", controllers.GetTags)
		public.GET("/people", controllers.GetPeople)
		public.GET("/people/:id", controllers.GetPersonDetail)

		public.GET("/episodes/:id", controllers.GetEpisodeDetail)

		// Playback-time timeline queries
		public.GET("/episodes/:id/image-at", controllers.GetImageAtTime)
		public.GET("/episodes/:id/voice-actor-at", controllers.GetVoiceActorAtTime)
		public.GET("/episodes/:id/primary-voice-actor", controllers.GetPrimaryVoiceActor)
		public.GET("/episodes/:id/segments-in-range", controllers.GetSegmentsInRange)
	}

	user := api.Group("/user")
	{
		user.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))

		user.POST("/episodes/:episode_id/favorite", controllers.AddFavorite)
		user.DELETE("/episodes/:episode_id/favorite", controllers.RemoveFavorite)
		user.GET("/favorites", controllers.GetFavorites)

		user.POST("/stories/:id/rating", controllers.RateStory)

		user.PUT("/episodes/:episode_id/progress", controllers.UpdatePlayProgress)
		user.GET("/history", controllers.GetPlayHistory)

		user.GET("/notifications", controllers.GetNotifications)
		user.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin", "editor"))

		// Stories
		admin.POST("/stories", controllers.CreateStory)
		admin.PUT("/stories/:id", controllers.UpdateStory)
		admin.PATCH("/stories/:id/publish", controllers.PublishStory)
		admin.DELETE("/stories/:id", controllers.DeleteStory)

		// Episodes
		admin.POST("/episodes", controllers.CreateEpisodeWithUpload)
		admin.GET("/episodes", controllers.GetEpisodes)
		admin.PUT("/episodes/:id", controllers.UpdateEpisode)
		admin.DELETE("/episodes/:id", controllers.DeleteEpisode)
		admin.POST("/episodes/:id/script", controllers.UploadEpisodeScript)

		// Image timeline (bulk validate-then-replace only)
		admin.GET("/episodes/:id/image-timeline", controllers.GetImageTimeline)
		admin.PUT("/episodes/:id/image-timeline", controllers.ReplaceImageTimeline)

		// Voice actor segments (bulk replace plus incremental edits)
		admin.GET("/episodes/:id/voice-actors", controllers.GetVoiceActorSegments)
		admin.PUT("/episodes/:id/voice-actors", controllers.ReplaceVoiceActorSegments)
		admin.POST("/episodes/:id/voice-actors", controllers.CreateVoiceActorSegment)
		admin.PUT("/episodes/:id/voice-actors/:segment_id", controllers.UpdateVoiceActorSegment)
		admin.DELETE("/episodes/:id/voice-actors/:segment_id", controllers.DeleteVoiceActorSegment)

		// Characters
		admin.POST("/characters", controllers.CreateCharacter)
		admin.PUT("/characters/:id", controllers.UpdateCharacter)
		admin.DELETE("/characters/:id", controllers.DeleteCharacter)

		// Voice actor profiles
		admin.POST("/people", controllers.CreatePerson)
		admin.PUT("/people/:id", controllers.UpdatePerson)
		admin.DELETE("/people/:id", controllers.DeletePerson)

		// Taxonomies
		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.PATCH("/categories/:id/toggle-status", controllers.ToggleCategoryStatus)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)
		admin.POST("/tags", controllers.CreateTag)

		// Uploads
		admin.POST("/uploads/image", controllers.UploadImage)
	}

	r.GET("/ws/episode/:id", ws.HandleEpisodeWebSocket)
	r.GET("/ws/user", ws.HandleUserWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
