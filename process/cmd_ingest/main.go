package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"oddscap/pkg/capture"
	"oddscap/pkg/ocr"
	"oddscap/pkg/storage"
	"oddscap/process/ingest"
)

func main() {
	var dir string
	var session int64
	flag.StringVar(&dir, "dir", "captures", "directory to watch for screenshots")
	flag.Int64Var(&session, "session", 0, "session key of the batch to attach captures to (required)")
	flag.Parse()
	if session == 0 {
		logrus.Fatal("-session is required")
	}

	_ = godotenv.Load()
	svc := capture.NewService(
		storage.NewBatchStore(mustDBFromEnv()),
		storage.NewDiskBlobStore(uploadBase()),
		ocr.Noop{}, // the service binary runs recognition at /process time
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := ingest.Run(ctx, dir, session, svc); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Fatal("ingest stopped")
	}
}

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

func uploadBase() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
