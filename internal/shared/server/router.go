package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"analyzer-backend/internal/analyses"
	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/llm/groq"
	"analyzer-backend/internal/shared/config"
	"analyzer-backend/internal/shared/server/middleware"
	"analyzer-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies. Without a Groq key the service still runs; every insight
	// report then comes from the template fallback.
	var generator llm.Client
	if cfg.GroqAPIKey != "" {
		client, err := groq.NewClient(cfg.GroqAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("failed to build groq client, using template insights: %v", err)
		} else {
			generator = client
		}
	} else {
		log.Printf("GROQ_API_KEY not set, using template insights")
	}

	runRepo := analyses.NewMemoryRepo()
	analysisSvc := analyses.NewService(runRepo, generator, cfg.Analysis)
	analysisHandler := analyses.NewHandler(analysisSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	analysisHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
