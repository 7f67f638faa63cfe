package service

import (
	"context"
	"io"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/pkg/worker"
	"github.com/sidyfoba/solarcom-console/internal/schema/importer"
)

// ImportService parses uploaded spreadsheets into field definitions.
// Parsing runs on the import worker pool so a burst of large uploads
// cannot starve request handling.
type ImportService struct {
	pools *worker.Pools
}

// NewImportService creates a new ImportService.
func NewImportService(pools *worker.Pools) *ImportService {
	return &ImportService{pools: pools}
}

// ParseHeaders reads an xlsx upload and returns the header row mapped to
// draft field definitions plus a short data preview.
func (s *ImportService) ParseHeaders(ctx context.Context, r io.Reader) (*importer.Result, error) {
	type outcome struct {
		result *importer.Result
		err    error
	}
	done := make(chan outcome, 1)

	err := s.pools.Import.Submit(ctx, func(ctx context.Context) {
		res, err := importer.FromXLSX(r)
		done <- outcome{result: res, err: err}
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeImportFailed, "submit import job", 503)
	}

	select {
	case out := <-done:
		if out.err != nil {
			return nil, apperrors.BadRequest(apperrors.CodeImportFailed, out.err.Error())
		}
		return out.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
