package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/vedicmath/internal/cli"
	"github.com/agbru/vedicmath/internal/dispatch"
)

// exportCSV writes the telemetry of d to path inside a trace span.
func exportCSV(ctx context.Context, d *dispatch.Dispatcher, path string) error {
	_, span := otel.Tracer("vedicmath/app").Start(ctx, "export",
		trace.WithAttributes(
			attribute.String("path", path),
			attribute.String("session", d.Session()),
			attribute.Int("records", d.Stats().Total),
		))
	defer span.End()

	if err := cli.WriteTelemetryToFile(d, path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		return err
	}
	return nil
}
