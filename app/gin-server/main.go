package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rishi6824/AIinterview-and-resume-analyser/config"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/api/handlers"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/api/middleware"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/api/routes"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/archive"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/cache"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/interview"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/logger"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/question"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/scoring"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/stt"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/vision"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/questionbank"
	mongorepo "github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/mongo"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/postgres"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/resolver"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/scorer"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/storage"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/workers"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	cfg := config.Interview()
	prov := config.Providers()

	// Optional backing stores. The interview core is in-memory; each store
	// that fails to connect only disables the feature it serves.
	var interviewRepo postgres.InterviewRepository
	var resumeRepo postgres.ResumeRepository
	var profileRepo postgres.ProfileRepository
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Warn("postgres unavailable; archival and resume features disabled")
	} else {
		interviewRepo = postgres.NewInterviewRepo(config.PostgresDB)
		resumeRepo = postgres.NewResumeRepo(config.PostgresDB)
		profileRepo = postgres.NewProfileRepo(config.PostgresDB)
		log.Info("postgres connected")
	}

	var redisCache cache.Cache
	redisReady := false
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Warn("redis unavailable; media streaming and caching disabled")
	} else {
		redisCache = cache.NewRedisCache(config.RedisClient)
		redisReady = true
		log.Info("redis connected")
	}

	var sampleRepo mongorepo.SampleRepository
	if err := config.InitMongo(); err != nil {
		log.WithError(err).Warn("mongo unavailable; sample audit trail disabled")
	} else {
		if err := config.EnsureMongoIndexes(); err != nil {
			log.WithError(err).Warn("mongo index creation failed")
		}
		sampleRepo = mongorepo.NewSampleRepo(config.MongoDatabase(), 24*time.Hour)
		log.Info("mongo connected")
	}

	ctx := context.Background()
	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}

	// Question providers in configured priority order. Unconfigured entries
	// are skipped; the static bank floor covers the all-down case.
	var questionProviders []question.Provider
	for _, name := range prov.Order {
		switch name {
		case "openrouter":
			if prov.OpenRouterKey != "" {
				questionProviders = append(questionProviders, question.NewOpenRouter(prov.OpenRouterKey, "", httpClient))
			}
		case "deepseek":
			if prov.DeepSeekKey != "" {
				questionProviders = append(questionProviders, question.NewDeepSeek(prov.DeepSeekKey, httpClient))
			}
		case "huggingface":
			if prov.HuggingFaceKey != "" {
				questionProviders = append(questionProviders, question.NewHuggingFace(prov.HuggingFaceKey, "", httpClient))
			}
		case "vertex":
			if prov.VertexProject != "" {
				vg, err := question.NewVertexGemini(ctx, prov.VertexProject, prov.VertexLocation, prov.VertexModel)
				if err != nil {
					log.WithError(err).Warn("vertex gemini init failed; provider skipped")
					continue
				}
				questionProviders = append(questionProviders, vg)
			}
		default:
			log.WithField("provider", name).Warn("unknown provider in PROVIDER_ORDER; skipped")
		}
	}
	log.WithField("count", len(questionProviders)).Info("question providers configured")

	bank, err := questionbank.Load(config.QuestionBankPath())
	if err != nil {
		log.WithError(err).Warn("question bank file unusable; built-in bank in effect")
	}

	var scoreProvider scoring.Provider
	if prov.HuggingFaceKey != "" {
		scoreProvider = scoring.NewHuggingFace(prov.HuggingFaceKey, "", httpClient)
	}

	res := resolver.New(questionProviders, bank, cfg.ProviderTimeout, log)
	sc := scorer.New(scoreProvider, cfg.ProviderTimeout, log)

	var sink archive.Sink
	{
		var sinks archive.Multi
		if interviewRepo != nil {
			sinks = append(sinks, archive.NewPostgres(interviewRepo))
		}
		if dir := os.Getenv("PREDICTIONS_DIR"); dir != "" {
			sinks = append(sinks, archive.NewFile(dir))
		}
		if len(sinks) > 0 {
			sink = sinks
		}
	}

	manager := interview.NewManager(res, sc, sink, cfg, log)

	var speech stt.Provider
	if os.Getenv("ENABLE_STT") == "true" {
		gs, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.WithError(err).Warn("google speech init failed; voice answers disabled")
		} else {
			speech = gs
			defer gs.Close()
		}
	}

	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		up, err := storage.NewGCSUploader(ctx, bucket)
		if err != nil {
			log.WithError(err).Warn("gcs init failed; resume storage disabled")
		} else {
			uploader = up
			defer up.Close()
		}
	}

	var wsHandler *handlers.WSHandler
	if redisReady {
		if prov.HuggingFaceKey != "" {
			pool := &workers.PhysicalWorkerPool{
				Redis:    config.RedisClient,
				Manager:  manager,
				Analyzer: vision.NewHuggingFace(prov.HuggingFaceKey, nil),
				Samples:  sampleRepo,
				Logger:   log,
			}
			if err := pool.Start(ctx); err != nil {
				log.WithError(err).Warn("physical worker pool failed to start")
			}
		} else {
			log.Warn("HUGGINGFACE_API_KEY not set; streamed media will queue unscored")
		}
		wsHandler = handlers.NewWSHandler(manager, config.RedisClient, "")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Interview: handlers.NewInterviewHandler(manager, profileRepo, speech, redisCache, log),
		Resume:    handlers.NewResumeHandler(uploader, resumeRepo, profileRepo, log),
		Chatbot:   handlers.NewChatbotHandler(),
		Admin:     handlers.NewAdminHandler(interviewRepo, redisCache, log),
		WS:        wsHandler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server listening")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
