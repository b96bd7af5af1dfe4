// Package report prints operator-facing summaries of capture-batch activity
// straight from the database.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"oddscap/models"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logrus.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("open db")
	}
	return gdb
}

// RunReport prints a month-bounded report of capture batches (month in
// YYYY-MM) and optionally lists the matching rows.
func RunReport(month string, list bool) {
	gdb := mustDBFromEnv()

	t, err := time.Parse("2006-01", month)
	if err != nil {
		logrus.WithError(err).Fatal("invalid month format, expected YYYY-MM")
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	type stateCount struct {
		State models.BatchState
		Cnt   int64
	}
	var counts []stateCount
	if err := gdb.Model(&models.CaptureBatch{}).
		Select("state, count(*) as cnt").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("state").Scan(&counts).Error; err != nil {
		logrus.WithError(err).Fatal("count batches")
	}

	var images int64
	if err := gdb.Model(&models.CaptureImage{}).
		Joins("JOIN capture_batches ON capture_batches.id = capture_images.batch_id").
		Where("capture_batches.created_at >= ? AND capture_batches.created_at < ?", start, end).
		Count(&images).Error; err != nil {
		logrus.WithError(err).Fatal("count images")
	}

	fmt.Printf("Capture batches for month=%s (UTC):\n", month)
	var total int64
	for _, c := range counts {
		fmt.Printf("  %s=%d\n", c.State, c.Cnt)
		total += c.Cnt
	}
	fmt.Printf("  total=%d images=%d\n", total, images)

	if list {
		var rows []models.CaptureBatch
		if err := gdb.Preload("Images").
			Where("created_at >= ? AND created_at < ?", start, end).
			Order("created_at").Find(&rows).Error; err != nil {
			logrus.WithError(err).Fatal("fetch rows")
		}
		for _, b := range rows {
			fmt.Printf("%s|%d|%s|%s|%d|%s\n",
				b.ID, b.SessionKey, b.Match().Title(), b.State, len(b.Images), b.CreatedAt.Format(time.RFC3339))
		}
	}
}
