package utils

import (
	"devcamper/database"
	"devcamper/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeResetTokenScheduler starts the hourly purge of expired
// password-reset tokens.
func InitializeResetTokenScheduler() *cron.Cron {
	log.Println("[RESET-SCHEDULER] Initializing reset token scheduler...")

	c := cron.New()

	c.AddFunc("@hourly", func() {
		PurgeExpiredResetTokens()
	})

	c.Start()
	log.Println("[RESET-SCHEDULER] Reset token scheduler started - runs hourly")

	return c
}

// PurgeExpiredResetTokens clears reset tokens whose 10 minute window has
// passed. Expired tokens are already rejected at use; this keeps stale
// hashes out of the table.
func PurgeExpiredResetTokens() {
	db := database.Database.Db

	result := db.Model(&models.User{}).
		Where("reset_password_token <> '' AND reset_password_expire < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":  "",
			"reset_password_expire": nil,
		})
	if result.Error != nil {
		log.Printf("[RESET-SCHEDULER] Error purging reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[RESET-SCHEDULER] Cleared %d expired reset tokens", result.RowsAffected)
	}
}
