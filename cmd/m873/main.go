package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/mahfuzul873/m873/internal/ai"
	"github.com/mahfuzul873/m873/internal/chatbot"
	"github.com/mahfuzul873/m873/internal/config"
	"github.com/mahfuzul873/m873/internal/corpusstore"
	"github.com/mahfuzul873/m873/internal/db"
	"github.com/mahfuzul873/m873/internal/handler"
	"github.com/mahfuzul873/m873/internal/job"
	"github.com/mahfuzul873/m873/internal/middleware"
	"github.com/mahfuzul873/m873/internal/model"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/password"
	"github.com/mahfuzul873/m873/internal/pkg/timeutil"
	"github.com/mahfuzul873/m873/internal/repo"
	"github.com/mahfuzul873/m873/internal/schedule"
	"github.com/mahfuzul873/m873/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "m873",
		Short: "m873 backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run m873 server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.DB)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	var seedEmail string
	var seedPassword string
	seedCmd := &cobra.Command{
		Use:   "seed-owner",
		Short: "create the owner account and grant it the owner role",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			if seedEmail == "" || seedPassword == "" {
				return fmt.Errorf("--email and --password are required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			conn, err := db.Open(cfg.DB)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return seedOwner(conn, seedEmail, seedPassword)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	seedCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "owner email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "owner password")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("corpus", cfg.Corpus.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	roleRepo := repo.NewUserRoleRepo(conn)
	otpRepo := repo.NewOTPRepo(conn)
	featureRepo := repo.NewFeatureRepo(conn)

	mailSender := service.NewEmailSender(cfg.Mail)
	otpService := service.NewOTPService(otpRepo, mailSender, service.OTPServiceOptions{
		TTL:               time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
		ResendCooldown:    time.Duration(cfg.OTP.ResendCooldownSeconds) * time.Second,
		DevAcceptAny:      cfg.OTP.DevAcceptAny,
		FallbackCacheSize: cfg.OTP.FallbackCacheSize,
	})
	authService := service.NewAuthService(userRepo, roleRepo, otpService,
		[]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	featureService := service.NewFeatureService(featureRepo)

	matcher := loadMatcher(ctx, cfg.Corpus)
	var generator ai.IGenerator
	if cfg.AI.Enable {
		provider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.APIKey)
		if err != nil {
			return fmt.Errorf("init ai provider: %w", err)
		}
		generator = ai.NewGenerator(provider, cfg.AI.Model)
	}
	chatService := service.NewChatService(matcher, generator,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewOTPCleanupJob(otpRepo), cfg.OTP.CleanupSpec); err != nil {
		return fmt.Errorf("schedule otp cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Features:      handler.NewFeatureHandler(featureService),
		Chat:          handler.NewChatHandler(chatService),
		Roles:         authService,
		JWTSecret:     []byte(cfg.JWTSecret),
		OTPRateWindow: time.Duration(cfg.OTP.RateWindowSeconds) * time.Second,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			middleware.RequestID(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

// seedOwner creates the owner account (or reuses an existing one with the
// same email) and grants it the owner role. Granting is idempotent.
func seedOwner(conn *sql.DB, email, plain string) error {
	ctx := context.Background()
	users := repo.NewUserRepo(conn)
	roles := repo.NewUserRoleRepo(conn)

	hash, err := password.Hash(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := users.Create(ctx, user); err != nil {
		if !errors.Is(err, appErr.ErrConflict) {
			return fmt.Errorf("create user: %w", err)
		}
		existing, err := users.GetByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("load existing user: %w", err)
		}
		user = existing
	}
	if err := roles.Grant(ctx, user.ID, model.RoleOwner, now); err != nil {
		return fmt.Errorf("grant owner role: %w", err)
	}
	logutil.GetLogger(ctx).Info("owner seeded", zap.String("email", user.Email), zap.String("user_id", user.ID))
	return nil
}

func newID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// loadMatcher builds the chatbot from the configured corpus. A missing or
// unreadable corpus degrades to an empty matcher so the rest of the server
// still comes up; the chatbot then answers from canned and generic replies.
func loadMatcher(ctx context.Context, cfg config.CorpusConfig) *chatbot.Matcher {
	source, err := corpusstore.New(ctx, cfg)
	if err != nil {
		logutil.GetLogger(ctx).Warn("init corpus source failed, chatbot runs without dataset", zap.Error(err))
		return chatbot.NewMatcher(nil)
	}
	raw, err := source.Load(ctx)
	if err != nil {
		logutil.GetLogger(ctx).Warn("load corpus failed, chatbot runs without dataset", zap.Error(err))
		return chatbot.NewMatcher(nil)
	}
	matcher := chatbot.NewMatcherFromText(string(raw))
	stats := matcher.Stats()
	logutil.GetLogger(ctx).Info("corpus loaded",
		zap.Int("total", stats.Total),
		zap.Int("en", stats.CountPrimary),
		zap.Int("bn", stats.CountSecondary),
	)
	return matcher
}
