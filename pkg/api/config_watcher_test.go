package api

import (
	"context"
	"os"
	"testing"
	"time"

	crypt "github.com/estafette/estafette-ci-crypt"
	"github.com/stretchr/testify/assert"
)

func TestConfigWatcher(t *testing.T) {

	t.Run("CallsOnReloadWithNewConfigAfterFileChange", func(t *testing.T) {

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		configPath := writeConfigFile(t, "buildLog:\n  namespace: before\n")
		configReader := NewConfigReader(crypt.NewSecretHelper("SazbwMf3NZxVVbBqQHebPcXCqrVn3DDp", false))

		reloaded := make(chan *APIConfig, 1)
		watcher, err := NewConfigWatcher(configPath, configReader, false, func(ctx context.Context, config *APIConfig) {
			reloaded <- config
		})
		assert.Nil(t, err)
		watcher.debounceTime = 10 * time.Millisecond
		defer watcher.Stop()

		err = watcher.Start(ctx)
		assert.Nil(t, err)

		// act
		err = os.WriteFile(configPath, []byte("buildLog:\n  namespace: after\n"), 0600)
		assert.Nil(t, err)

		select {
		case config := <-reloaded:
			assert.Equal(t, "after", config.BuildLog.Namespace)
		case <-time.After(5 * time.Second):
			t.Fatal("config was not reloaded")
		}
	})

	t.Run("StopCanBeCalledTwice", func(t *testing.T) {

		configPath := writeConfigFile(t, "")
		configReader := NewConfigReader(crypt.NewSecretHelper("SazbwMf3NZxVVbBqQHebPcXCqrVn3DDp", false))
		watcher, err := NewConfigWatcher(configPath, configReader, false, func(ctx context.Context, config *APIConfig) {})
		assert.Nil(t, err)

		// act
		watcher.Stop()
		watcher.Stop()
	})
}
