package document

import (
	"context"

	"braces.dev/errtrace"
	"golang.org/x/sync/errgroup"
)

// Service processes many files with the same options. Every file gets its own
// pipeline; nothing is shared between them except the front end, which must
// be safe for concurrent use.
type Service struct {
	opts Options
	jobs int
}

// NewService creates a service running at most jobs files at a time.
func NewService(opts Options, jobs int) *Service {
	if jobs < 1 {
		jobs = 1
	}
	return &Service{opts: opts, jobs: jobs}
}

// ProcessFile processes a single file.
func (s *Service) ProcessFile(ctx context.Context, path string) (*Document, error) {
	return errtrace.Wrap2(NewFromFile(ctx, path, s.opts))
}

// ProcessFiles processes paths concurrently and returns the documents in the
// order of paths. The first failure cancels the remaining files.
func (s *Service) ProcessFiles(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))
	if len(paths) == 0 {
		return docs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(s.jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := s.ProcessFile(gctx, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return docs, nil
}
