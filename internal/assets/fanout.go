package assets

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// DefaultParallel bounds concurrent fetches when no limit is given.
const DefaultParallel = 4

// Request names one asset to load.
type Request struct {
	Asset string
	Ref   string
}

// Result is the outcome of one Request. Exactly one of Data and Err is
// meaningful.
type Result struct {
	Asset string
	Ref   string
	Data  []byte
	Err   error
}

// LoadAll fetches every request with at most limit in flight. Results are
// in request order and a failure of one asset never cancels the others.
func LoadAll(ctx context.Context, src Source, reqs []Request, limit int) []Result {
	if limit <= 0 {
		limit = DefaultParallel
	}
	results := make([]Result, len(reqs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, req := range reqs {
		g.Go(func() error {
			data, err := src.Fetch(ctx, req.Ref)
			if err != nil {
				var fe *FetchError
				if errors.As(err, &fe) && fe.Asset == "" {
					fe.Asset = req.Asset
				}
			}
			results[i] = Result{Asset: req.Asset, Ref: req.Ref, Data: data, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}
