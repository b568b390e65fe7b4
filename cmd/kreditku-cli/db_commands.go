package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kreditku_backend/internals/configs"
	database "kreditku_backend/internals/databases"
	notifService "kreditku_backend/internals/features/notifications/service"
	scheduler "kreditku_backend/internals/features/users/auth/scheduler"
	"kreditku_backend/internals/seeds"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Jalankan AutoMigrate semua tabel",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(*configPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate gagal: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ migrate selesai")
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi data awal (users, dealers, programs) dari file YAML",
		Example: `  kreditku-cli seed
  kreditku-cli seed --file ./seed.staging.yaml --config ./cli.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(*configPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := seeds.RunAllSeeds(db, file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ seed selesai")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", seeds.DefaultPath, "file seed YAML")
	return cmd
}

func cleanupCmd(configPath *string) *cobra.Command {
	var (
		tokenDays int
		notifDays int
	)
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Hapus token blacklist/refresh kadaluarsa dan notifikasi lama yang sudah dibaca",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(*configPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			now := time.Now()
			scheduler.RunCleanupOnce(db, now.AddDate(0, 0, -tokenDays))

			n, err := notifService.NewGormStore(db).PurgeReadBefore(cmd.Context(), now.AddDate(0, 0, -notifDays))
			if err != nil {
				return err
			}
			configs.Log.Info("notifikasi lama dihapus", zap.Int64("deleted", n))
			fmt.Fprintf(cmd.OutOrStdout(), "✅ cleanup selesai (%d notifikasi)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&tokenDays, "token-days", 7, "umur minimal token blacklist yang dihapus (hari)")
	cmd.Flags().IntVar(&notifDays, "notification-days", 90, "umur minimal notifikasi terbaca yang dihapus (hari)")
	return cmd
}
