// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the write+rename bursts editors produce on save.
const watchDebounce = 200 * time.Millisecond

// Watch watches the config directory and invokes onChange with the freshly
// loaded configuration whenever a config file is written. Reload failures are
// logged and the previous configuration stays in effect. Watch blocks until
// ctx is cancelled.
func Watch(ctx context.Context, onChange func(*Config)) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(event.Name)
			if name != "config.toml" && name != "config.json" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				cfg, err := Load()
				if err != nil {
					log.Printf("CONFIG: Reload failed, keeping previous config: %v", err)
					return
				}
				onChange(cfg)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("CONFIG: Watch error: %v", err)
		}
	}
}
