package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch re-loads the config file on change and invokes onChange with the new
// configuration. Invalid edits are logged and skipped so a half-saved file
// cannot take the daemon down. Returns when ctx is cancelled.
func Watch(ctx context.Context, configPath string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(configPath); err != nil {
		return err
	}

	log.Debug().Str("path", configPath).Msg("Watching config file")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			cfg, err := NewLoader(configPath).Load()
			if err != nil {
				log.Warn().Err(err).Msg("Config reload skipped")
				continue
			}

			log.Info().Str("path", configPath).Msg("Config reloaded")
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Config watcher error")
		}
	}
}
