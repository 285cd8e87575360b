package fetch

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SampleDelimiter separates individual sample posts in the concatenated
// analyzer input.
const SampleDelimiter = "\n\n---\n\n"

// maxConcurrentFetches bounds parallel sample downloads.
const maxConcurrentFetches = 4

// SampleTexts fetches one or more sample-post URLs concurrently and returns
// their texts concatenated in input order, paragraph-delimited. A failure on
// any URL fails the whole fetch; partial sample sets would skew the analysis.
func SampleTexts(ctx context.Context, urls []string, opts *Options) (string, error) {
	if len(urls) == 0 {
		return "", &Error{Message: "no sample text URLs given"}
	}

	texts := make([]string, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, u := range urls {
		g.Go(func() error {
			result, err := URL(gctx, u, opts)
			if err != nil {
				return err
			}
			texts[i] = result.Text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var nonEmpty []string
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(text))
		}
	}
	if len(nonEmpty) == 0 {
		return "", &Error{Message: "sample texts were empty"}
	}

	return strings.Join(nonEmpty, SampleDelimiter), nil
}
