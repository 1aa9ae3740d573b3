// Package yamlfile reads operator record sets from YAML database files.
package yamlfile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"opinfo/internal/operator/models"
	"opinfo/pkg/platform/sentinel"
)

const tracerName = "opinfo/source/yamlfile"

// Source loads every configured file. Files that cannot be read or parsed
// are skipped with a warning.
type Source struct {
	paths  []string
	logger *slog.Logger
	tracer trace.Tracer
}

type Option func(*Source)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Source) {
		s.tracer = tracer
	}
}

func New(paths []string, opts ...Option) (*Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one database path is required")
	}

	s := &Source{paths: paths}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// Load reads all files concurrently and returns the parsed sets in path
// order. It fails with sentinel.ErrNoDatabase when no file could be used.
func (s *Source) Load(ctx context.Context) ([]models.RecordSet, error) {
	ctx, span := s.tracer.Start(ctx, "yamlfile.Load",
		trace.WithAttributes(attribute.Int("opinfo.paths", len(s.paths))),
	)
	defer span.End()

	results := make([]*models.RecordSet, len(s.paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range s.paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := s.readFile(ctx, path)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping operator database file",
					"path", path,
					"error", err,
				)
				return nil
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load operator databases: %w", err)
	}

	var sets []models.RecordSet
	for _, set := range results {
		if set != nil {
			sets = append(sets, *set)
		}
	}
	span.SetAttributes(attribute.Int("opinfo.record_sets", len(sets)))
	if len(sets) == 0 {
		span.SetStatus(codes.Error, "no usable database")
		return nil, fmt.Errorf("load operator databases from %v: %w", s.paths, sentinel.ErrNoDatabase)
	}
	return sets, nil
}

func (s *Source) readFile(ctx context.Context, path string) (*models.RecordSet, error) {
	_, span := s.tracer.Start(ctx, "yamlfile.readFile",
		trace.WithAttributes(attribute.String("opinfo.path", path)),
	)
	defer span.End()

	raw, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	set, err := Parse(raw)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	set.Source = path
	return set, nil
}

// Parse decodes and validates one YAML database document.
func Parse(raw []byte) (*models.RecordSet, error) {
	var set models.RecordSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode yaml: %w: %w", sentinel.ErrInvalidRecord, err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}
