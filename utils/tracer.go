package utils

import (
	"github.com/wantsapp/wants-backend/utils/dotenv"
	"github.com/wantsapp/wants-backend/utils/flag"
	Logger "github.com/wantsapp/wants-backend/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// InitTracer starts the Datadog tracer. Must be called once from main before
// serving traffic.
func InitTracer() {
	env := "development"
	if dotenv.IsProdEnv() {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv(env),
	)

	Logger.Log.Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
