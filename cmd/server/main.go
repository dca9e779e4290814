package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mhartwig22/recipe-book/internal/config"
	"github.com/mhartwig22/recipe-book/internal/database"
	"github.com/mhartwig22/recipe-book/internal/handler"
	"github.com/mhartwig22/recipe-book/internal/middleware"
	"github.com/mhartwig22/recipe-book/internal/queue"
	"github.com/mhartwig22/recipe-book/internal/repository"
	"github.com/mhartwig22/recipe-book/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis is optional; without it the auth rate limiter is a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, auth rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	recipes := repository.NewRecipeRepo(db)
	categories := repository.NewCategoryRepo(db)
	comments := repository.NewCommentRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS()) // the SPA is served from a different origin

	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e, cfg.UploadDir)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), limiter)
	router.RegisterRecipes(e, handler.NewRecipeHandler(recipes, cfg.UploadDir), cfg.JWTSecret)
	router.RegisterCategories(e, handler.NewCategoryHandler(categories), cfg.JWTSecret)
	router.RegisterComments(e, handler.NewCommentHandler(comments), cfg.JWTSecret)
	router.RegisterFavorites(e, handler.NewFavoriteHandler(favorites), cfg.JWTSecret)

	// Background consumer that writes the activity log from broker events.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
