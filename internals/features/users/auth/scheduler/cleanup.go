package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	authRepo "kreditku_backend/internals/features/users/auth/repository"
)

// Job tambahan yang ikut jadwal cleanup (mis. purge notifikasi).
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

// StartCleanupCron menjadwalkan cleanup token + job tambahan, berhenti saat ctx dibatalkan.
// Jadwal dari CLEANUP_CRON_SCHEDULE (default 02:15 setiap hari).
func StartCleanupCron(ctx context.Context, db *gorm.DB, extra ...Job) error {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	spec := configs.GetEnv("CLEANUP_CRON_SCHEDULE", "15 2 * * *")

	jobs := append([]Job{{
		Name: "token_cleanup",
		Run: func(context.Context) {
			RunCleanupOnce(db, time.Now().Add(-time.Duration(ttlDays)*24*time.Hour))
		},
	}}, extra...)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	for _, j := range jobs {
		j := j
		if _, err := c.AddFunc(spec, func() {
			jctx, cancel := context.WithTimeout(ctx, 4*time.Minute)
			defer cancel()
			j.Run(jctx)
		}); err != nil {
			return fmt.Errorf("add cron %s: %w", j.Name, err)
		}
	}

	c.Start()
	configs.Log.Info("[CLEANUP] cron aktif", zap.String("schedule", spec), zap.Int("jobs", len(jobs)))

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		configs.Log.Info("[CLEANUP] scheduler berhenti")
	}()
	return nil
}

// RunCleanupOnce dipisah supaya bisa dipanggil dari CLI.
func RunCleanupOnce(db *gorm.DB, deleteBefore time.Time) {
	log := configs.Log.With(zap.String("job", "token_cleanup"))

	n, err := authRepo.CleanupExpiredBlacklist(db, deleteBefore)
	if err != nil {
		log.Error("gagal hapus token_blacklist", zap.Error(err))
	} else if n > 0 {
		log.Info("token blacklist kadaluarsa dihapus", zap.Int64("count", n))
	} else {
		log.Debug("tidak ada token yang memenuhi syarat dihapus")
	}

	n, err = authRepo.CleanupExpiredRefreshTokens(db, deleteBefore)
	if err != nil {
		log.Error("gagal hapus refresh_tokens", zap.Error(err))
	} else if n > 0 {
		log.Info("refresh token kadaluarsa dihapus", zap.Int64("count", n))
	}
}
