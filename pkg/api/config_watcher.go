package api

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ConfigWatcher monitors the config file and calls onReload with the freshly read config after changes settle
type ConfigWatcher struct {
	configPath     string
	configReader   ConfigReader
	decryptSecrets bool
	onReload       func(ctx context.Context, config *APIConfig)
	debounceTime   time.Duration

	watcher    *fsnotify.Watcher
	reloadChan chan struct{}
	stopOnce   sync.Once
	stopChan   chan struct{}
}

// NewConfigWatcher returns a watcher for configPath; call Start to begin watching
func NewConfigWatcher(configPath string, configReader ConfigReader, decryptSecrets bool, onReload func(ctx context.Context, config *APIConfig)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "Failed creating file watcher")
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "Failed resolving config path %v", configPath)
	}

	return &ConfigWatcher{
		configPath:     absPath,
		configReader:   configReader,
		decryptSecrets: decryptSecrets,
		onReload:       onReload,
		debounceTime:   2 * time.Second,
		watcher:        watcher,
		reloadChan:     make(chan struct{}, 1),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches the directory holding the config file; configmaps are updated by swapping symlinks, so the file itself can't be watched
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	configDir := filepath.Dir(cw.configPath)
	if err := cw.watcher.Add(configDir); err != nil {
		return errors.Wrapf(err, "Failed watching config directory %v", configDir)
	}

	log.Info().Str("configPath", cw.configPath).Msg("Starting configuration watcher...")

	go cw.watchLoop(ctx)
	go cw.reloadLoop(ctx)

	return nil
}

// Stop stops watching, it's safe to call more than once
func (cw *ConfigWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.stopChan)
		if err := cw.watcher.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed closing config file watcher")
		}
	})
}

func (cw *ConfigWatcher) watchLoop(ctx context.Context) {
	configFile := filepath.Base(cw.configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configFile && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Config file change detected")
				cw.triggerReload()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Config watcher error")
		}
	}
}

func (cw *ConfigWatcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer
	defer func() {
		if reloadTimer != nil {
			reloadTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case <-cw.reloadChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(cw.debounceTime, func() {
				cw.reload(ctx)
			})
		}
	}
}

func (cw *ConfigWatcher) triggerReload() {
	select {
	case cw.reloadChan <- struct{}{}:
	default:
		// reload already pending
	}
}

func (cw *ConfigWatcher) reload(ctx context.Context) {
	config, err := cw.configReader.ReadConfigFromFile(cw.configPath, cw.decryptSecrets)
	if err != nil {
		log.Error().Err(err).Msgf("Failed reloading config file %v, keeping current config", cw.configPath)
		return
	}

	log.Info().Msgf("Reloaded config file %v", cw.configPath)
	cw.onReload(ctx, config)
}
