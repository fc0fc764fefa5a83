// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// --- recommend command ---

type recommendOutput struct {
	recommend.Panels
	Posters map[string]string `json:"posters,omitempty"`
}

func (c *cli) recommendCmd() *cobra.Command {
	var (
		withPosters bool
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to a title",
		Long: `Recommend movies similar to a title.

The title must match the catalog exactly, including the year, for example
"Toy Story (1995)". Use "reelmatch movies --search" to find it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if strings.TrimSpace(title) == "" {
				return errors.New("title must not be blank")
			}
			if withPosters {
				c.cfg.Poster.Enabled = true
			}

			a, err := app.Build(cmd.Context(), c.cfg, logging.Logger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			resp, err := a.Engine.Recommend(cmd.Context(), title)
			if resp == nil {
				return fmt.Errorf("recommend %q: %w", title, err)
			}
			if errors.Is(err, recommend.ErrNotFound) && len(resp.Content) == 0 && len(resp.Collaborative) == 0 {
				return fmt.Errorf("unknown title %q (try: reelmatch movies --search)", title)
			}

			out := recommendOutput{Panels: recommend.BuildPanels(resp, c.cfg.Recommend.PanelSize, err)}
			if a.Posters != nil {
				out.Posters = make(map[string]string, len(out.Slate))
				for _, p := range a.Posters.ResolveAll(cmd.Context(), out.Slate) {
					if p.Err == nil && p.URL != "" {
						out.Posters[p.Title] = p.URL
					}
				}
			}

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			c.printPanels(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withPosters, "posters", false, "Resolve poster URLs for the slate (needs TMDB_API_KEY)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

func (c *cli) printPanels(out recommendOutput) {
	fmt.Fprintf(c.out, "Because you picked: %s\n", out.Query)

	fmt.Fprintln(c.out, "\nTop picks:")
	for i, t := range out.Slate {
		if url := out.Posters[t]; url != "" {
			fmt.Fprintf(c.out, "  %d. %s  %s\n", i+1, t, url)
			continue
		}
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, t)
	}

	printList(c, "People who liked it also liked:", out.SimilarUsers)
	printList(c, "Similar genres and tags:", out.SimilarContent)

	for _, n := range out.Notices {
		fmt.Fprintf(c.out, "\nNote: %s\n", n)
	}
}

func printList(c *cli, heading string, titles []string) {
	fmt.Fprintf(c.out, "\n%s\n", heading)
	if len(titles) == 0 {
		fmt.Fprintln(c.out, "  (none)")
		return
	}
	for _, t := range titles {
		fmt.Fprintf(c.out, "  - %s\n", t)
	}
}

// --- movies command ---

func (c *cli) moviesCmd() *cobra.Command {
	var (
		search string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List catalog titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}
			paths, opts := c.cfg.DataPaths()
			// Only the catalog is needed.
			paths = dataset.Paths{Movies: paths.Movies}

			ds, err := dataset.LoadCSV(cmd.Context(), paths, opts)
			if err != nil {
				return err
			}

			titles := ds.SearchTitles(search, limit)
			for _, t := range titles {
				fmt.Fprintln(c.out, t)
			}
			if len(titles) == 0 {
				fmt.Fprintln(c.errOut, "no matching titles")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive substring to match")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum titles to print (0 = all)")
	return cmd
}
