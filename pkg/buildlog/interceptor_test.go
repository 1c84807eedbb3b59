package buildlog

import (
	"context"
	"strings"
	"testing"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/executor"
	"github.com/stretchr/testify/assert"
)

func getExecutor() executor.Client {
	config := &api.ExecutorConfig{}
	config.SetDefaults()
	return executor.NewClient(config)
}

func TestInstallInterceptor(t *testing.T) {

	t.Run("ForwardsStdoutAsInfoAndStderrAsError", func(t *testing.T) {

		buffer := registerBuffer(t, "estafette.build.widget-7")
		client := getExecutor()
		InstallInterceptor(client)
		ctx := WithBuild(context.Background(), "estafette.build.widget-7")

		// act
		err := client.HandleOutput(ctx, executor.Stdout, executor.Target{}, strings.NewReader("compiling\n"))
		assert.Nil(t, err)
		err = client.HandleOutput(ctx, executor.Stderr, executor.Target{}, strings.NewReader("warning\n"))
		assert.Nil(t, err)

		lines := buffer.Lines()
		if assert.Equal(t, 2, len(lines)) {
			assert.Equal(t, "compiling", lines[0]["message"])
			assert.Equal(t, "info", lines[0]["level"])
			assert.Equal(t, "warning", lines[1]["message"])
			assert.Equal(t, "error", lines[1]["level"])
		}
	})

	t.Run("ForwardsEachLineOnceWhenInstalledTwice", func(t *testing.T) {

		buffer := registerBuffer(t, "estafette.build.widget-7")
		client := getExecutor()

		// act
		first := InstallInterceptor(client)
		second := InstallInterceptor(client)

		assert.True(t, first)
		assert.False(t, second)
		err := client.HandleOutput(WithBuild(context.Background(), "estafette.build.widget-7"), executor.Stdout, executor.Target{}, strings.NewReader("only once\n"))
		assert.Nil(t, err)
		assert.Equal(t, 1, len(buffer.Lines()))
	})

	t.Run("StillRunsOriginalHandler", func(t *testing.T) {

		client := getExecutor()
		original := []string{}
		client.SetHandler(executor.Stdout, func(ctx context.Context, target executor.Target, line string) {
			original = append(original, line)
		})
		InstallInterceptor(client)

		// act
		err := client.HandleOutput(context.Background(), executor.Stdout, executor.Target{}, strings.NewReader("a\nb\n"))

		assert.Nil(t, err)
		assert.Equal(t, []string{"a", "b"}, original)
	})

	t.Run("ForwardsLinesContainingFormatVerbsVerbatim", func(t *testing.T) {

		buffer := registerBuffer(t, "estafette.build.widget-7")
		client := getExecutor()
		InstallInterceptor(client)

		// act
		err := client.HandleOutput(WithBuild(context.Background(), "estafette.build.widget-7"), executor.Stdout, executor.Target{}, strings.NewReader("100%s done\n"))

		assert.Nil(t, err)
		assert.Equal(t, "100%s done", buffer.Lines()[0]["message"])
	})
}
