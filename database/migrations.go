package database

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/models"
)

// Migrate runs AutoMigrate for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Plan{},
		&models.Investment{},
		&models.Withdrawal{},
		&models.PixDeposit{},
	)
}

// BackupDatabase attempts to create a SQL dump using mysqldump if it's available on PATH.
// It writes to the provided path and returns an error if the command fails.
func BackupDatabase(dsn string, outPath string) error {
	if _, err := exec.LookPath("mysqldump"); err != nil {
		return fmt.Errorf("mysqldump not found in PATH: %w", err)
	}

	// NOTE: dsn should be parsed by the caller to extract user/host/db or provide a secure wrapper
	args := []string{os.Getenv("DB_BACKUP_FLAGS")}
	cmd := exec.CommandContext(context.Background(), "mysqldump", args...)
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	cmd.Stdout = outFile
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysqldump failed: %w", err)
	}
	return nil
}

// RunMigrationsWithBackup runs Migrate after attempting a mysqldump backup when
// DB_BACKUP_PATH is set. Backup is best-effort.
func RunMigrationsWithBackup(db *gorm.DB) error {
	backupPath := os.Getenv("DB_BACKUP_PATH")
	if backupPath != "" {
		go func() {
			_ = BackupDatabase(os.Getenv("DB_DSN"), backupPath)
		}()
		// allow a small window for the backup to start
		time.Sleep(500 * time.Millisecond)
	}
	return Migrate(db)
}
