package buildlog

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/clients/executor"
)

// InterceptorName is the name the output interceptor is installed under
const InterceptorName = "buildlog"

// Decoratable is the extension point of the executor the interceptor installs itself into
type Decoratable interface {
	Decorate(name string, decorator executor.Decorator) bool
}

// InstallInterceptor makes every stdout line of d go to Infof and every stderr line to Errorf of the build bound to
// the context the output is handled with, before the original handler runs. Installing it again is a no-op; the
// return value tells whether this call installed it.
func InstallInterceptor(d Decoratable) bool {
	return d.Decorate(InterceptorName, intercept)
}

func intercept(stream executor.Stream, next executor.LineHandler) executor.LineHandler {
	forward := Infof
	if stream == executor.Stderr {
		forward = Errorf
	}

	return func(ctx context.Context, target executor.Target, line string) {
		forward(ctx, "%s", line)
		next(ctx, target, line)
	}
}
