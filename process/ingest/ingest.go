// Package ingest attaches screenshots dropped into a local directory to the
// open capture batch of one session. It is an operator convenience next to
// the Telegram upload path: point it at a folder, save captures there, they
// join the batch as if uploaded.
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"oddscap/pkg/capture"
)

// Run ingests every image already in dir, then watches for new files until
// the context is cancelled. Files are debounced so half-written screenshots
// are not picked up.
func Run(ctx context.Context, dir string, sessionKey int64, svc *capture.Service) error {
	for _, name := range listImageFiles(dir) {
		ingestFile(dir, name, sessionKey, svc)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	logrus.WithField("dir", dir).Info("watching for captures")

	// simple debounce map of pending files
	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
				name := filepath.Base(ev.Name)
				if isSupportedExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					delete(pending, name)
					ingestFile(dir, name, sessionKey, svc)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watch error")
		}
	}
}

func ingestFile(dir, name string, sessionKey int64, svc *capture.Service) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		logrus.WithError(err).WithField("file", name).Warn("read capture failed")
		return
	}
	batch, err := svc.AddImage(sessionKey, name, data)
	if err != nil {
		logrus.WithError(err).WithField("file", name).Warn("capture not attached")
		return
	}
	logrus.WithFields(logrus.Fields{"file": name, "captures": len(batch.Images)}).Info("capture attached")
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}
