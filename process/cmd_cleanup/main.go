// Retention cleanup: deletes SENT batches older than the retention window
// together with their image blobs. Sent batches are kept for audit for a
// while, not forever.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"oddscap/models"
	"oddscap/pkg/storage"
)

func main() {
	days := flag.Int("days", 30, "delete SENT batches older than this many days")
	dryRun := flag.Bool("dry-run", false, "report what would be deleted without deleting")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logrus.Fatal("DB_DSN not set")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("open db")
	}
	blobs := storage.NewDiskBlobStore(uploadBase())

	cutoff := time.Now().UTC().AddDate(0, 0, -*days)
	var batches []models.CaptureBatch
	if err := gdb.Preload("Images").
		Where("state = ? AND sent_at < ?", models.BatchSent, cutoff).
		Find(&batches).Error; err != nil {
		logrus.WithError(err).Fatal("fetch expired batches")
	}
	if len(batches) == 0 {
		fmt.Println("nothing to clean up")
		return
	}

	var removedBlobs, removedBatches int
	for _, b := range batches {
		if *dryRun {
			fmt.Printf("would delete %s (%s, %d images, sent %s)\n",
				b.ID, b.Match().Title(), len(b.Images), b.SentAt.Format(time.RFC3339))
			continue
		}
		for _, img := range b.Images {
			if err := blobs.Remove(img.StoreKey); err != nil {
				logrus.WithError(err).WithField("store_key", img.StoreKey).Warn("blob removal failed")
				continue
			}
			removedBlobs++
		}
		if err := gdb.Where("batch_id = ?", b.ID).Delete(&models.CaptureImage{}).Error; err != nil {
			logrus.WithError(err).WithField("batch", b.ID).Warn("image rows not deleted")
			continue
		}
		if err := gdb.Delete(&models.CaptureBatch{}, "id = ?", b.ID).Error; err != nil {
			logrus.WithError(err).WithField("batch", b.ID).Warn("batch not deleted")
			continue
		}
		removedBatches++
	}
	if !*dryRun {
		fmt.Printf("cleanup done: batches deleted=%d, blobs removed=%d\n", removedBatches, removedBlobs)
	}
}

func uploadBase() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
