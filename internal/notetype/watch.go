package notetype

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch reloads p whenever its file is written or replaced, and calls
// onChange after each successful reload. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so that editors
// which save by rename are still picked up.
func Watch(ctx context.Context, p *FileProvider, log zerolog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(p.Path())
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := p.Reload(); err != nil {
				// Half-written files fail to parse; the next write retries.
				log.Warn().Err(err).Str("path", target).Msg("note type reload failed")
				continue
			}
			log.Debug().Str("path", target).Msg("note types reloaded")
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("note type watcher error")
		}
	}
}
