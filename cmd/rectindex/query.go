package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterstace/rstar"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// runQueries answers all queries against tree, at most workers at a time.
// results[i] holds the sorted keys intersecting queries[i].
func runQueries(ctx context.Context, tree *rstar.SyncRTree[string], queries []RectDto, workers int) ([][]string, error) {
	results := make([][]string, len(queries))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			keys := tree.Intersecting(q.Rect())
			sort.Strings(keys)
			results[i] = keys
			log.WithFields(logrus.Fields{
				"query": i,
				"rect":  q.Rect().String(),
				"hits":  len(keys),
			}).Debug("query done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResults(w io.Writer, queries []RectDto, results [][]string) {
	label := color.New(color.FgCyan).SprintFunc()
	hits := color.New(color.FgGreen).SprintFunc()
	none := color.New(color.FgYellow).SprintFunc()
	for i, keys := range results {
		name := queries[i].Key
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if len(keys) == 0 {
			fmt.Fprintf(w, "%s %v: %s\n", label(name), queries[i].Rect(), none("no hits"))
			continue
		}
		fmt.Fprintf(w, "%s %v: %s\n", label(name), queries[i].Rect(), hits(strings.Join(keys, " ")))
	}
}
