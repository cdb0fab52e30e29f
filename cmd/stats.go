package cmd

import (
	"context"
	"fmt"
	"strconv"

	"movie-feedback/internal/data/repository"
	"movie-feedback/internal/usecase"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newStatsCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print ratings and review counts per published movie",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := openRepository(cmd.Context(), cc.config, cc.log)
			if err != nil {
				return err
			}
			defer closeRepo()

			rows, err := collectStats(cmd.Context(), repo)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No published movies")
				return nil
			}
			fmt.Fprintln(out, renderStats(rows))
			return nil
		},
	}
}

type movieStats struct {
	Title      string
	Ratings    int64
	MiddleStar int
	Reviews    int64
}

func collectStats(ctx context.Context, repo *repository.Repository) ([]movieStats, error) {
	movies, err := repo.Movie.FindPublished(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(movies))
	for _, movie := range movies {
		ids = append(ids, movie.ID)
	}
	stats, err := repo.Rating.ListStats(ctx, ids, "")
	if err != nil {
		return nil, err
	}

	rows := make([]movieStats, 0, len(movies))
	for _, movie := range movies {
		reviews, err := repo.Review.CountByMovieID(ctx, movie.ID)
		if err != nil {
			return nil, err
		}
		s := stats[movie.ID]
		rows = append(rows, movieStats{
			Title:      movie.Title,
			Ratings:    s.Count,
			MiddleStar: usecase.MiddleStar(s.Sum, s.Count),
			Reviews:    reviews,
		})
	}
	return rows, nil
}

func renderStats(rows []movieStats) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Movie", "Ratings", "Middle star", "Reviews"})

	for _, row := range rows {
		tw.AppendRow(table.Row{
			row.Title,
			strconv.FormatInt(row.Ratings, 10),
			strconv.Itoa(row.MiddleStar),
			strconv.FormatInt(row.Reviews, 10),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
