package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
	"github.com/mamadbah2/horsefeed/internal/repository/workbook"
	"github.com/mamadbah2/horsefeed/internal/service/catalog"
	"github.com/mamadbah2/horsefeed/internal/service/nutrition"
	"github.com/mamadbah2/horsefeed/pkg/clients/download"
	"github.com/mamadbah2/horsefeed/pkg/logger"
)

type sourceFlags struct {
	requirements string
	feeds        string
	feedsSheet   string
	headerRow    int
	nameColumn   string
	timeout      time.Duration
	verbose      bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:           "horsefeed",
		Short:         "Horse ration calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.requirements, "requirements", "konie wg wag wymagania zywieniowe.xlsx", "requirements workbook path or URL")
	pf.StringVar(&flags.feeds, "feeds", "pasze tresciwe i obetosciowe do aplikacji.xlsx", "feed composition workbook path or URL")
	pf.StringVar(&flags.feedsSheet, "feeds-sheet", "", "feed composition sheet (default: first sheet)")
	pf.IntVar(&flags.headerRow, "feeds-header-row", 1, "zero-based header row of the feed sheet")
	pf.StringVar(&flags.nameColumn, "feed-name-column", catalog.DefaultFeedNameColumn, "header of the feed name column")
	pf.DurationVar(&flags.timeout, "timeout", time.Minute, "time limit for loading reference data")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log loader details to stderr")

	cmd.AddCommand(newEvaluateCmd(flags))
	cmd.AddCommand(newFeedsCmd(flags))
	cmd.AddCommand(newWeightsCmd(flags))

	return cmd
}

func newEvaluateCmd(flags *sourceFlags) *cobra.Command {
	var (
		weight      float64
		subcategory string
		notes       string
		feedArgs    []string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compare a diet against the requirement for a horse",
		Example: `  horsefeed evaluate --weight 450 --subcategory "Średnie" \
    --feed "Owies=2.5" --feed "Siano łąkowe=8"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diet, err := parseFeedArgs(feedArgs)
			if err != nil {
				return err
			}

			svc, release, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			eval, err := svc.Evaluate(cmd.Context(), models.Session{Authenticated: true}, models.EvaluationRequest{
				Weight:      weight,
				Subcategory: subcategory,
				Notes:       notes,
				Selections:  diet,
			})
			if err != nil {
				return err
			}

			return writeEvaluation(cmd.OutOrStdout(), eval, format)
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 500, "body weight in kg")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "requirement row, e.g. \"Średnie\"")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes carried into the result")
	cmd.Flags().StringArrayVar(&feedArgs, "feed", nil, "diet row as NAME=KG (repeatable)")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("subcategory")

	return cmd
}

func newFeedsCmd(flags *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "feeds",
		Short: "List the feeds of the composition table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, release, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			options, err := svc.FeedOptions(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range options[1:] {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newWeightsCmd(flags *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "List the tabulated weight classes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, release, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			weights, err := svc.WeightClasses(cmd.Context())
			if err != nil {
				return err
			}
			for _, w := range weights {
				fmt.Fprintf(cmd.OutOrStdout(), "%d kg\n", w)
			}
			return nil
		},
	}
}

// service loads the reference workbooks. The returned release func closes them.
func (f *sourceFlags) service(ctx context.Context) (*nutrition.Service, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.NewConsole(f.verbose)

	var closers []io.Closer
	release := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn("failed to close workbook", zap.Error(err))
			}
		}
	}

	client := download.NewClient(f.timeout, "")
	reqs, err := openWorkbook(f.requirements, client)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, reqs)

	feeds, err := openWorkbook(f.feeds, client)
	if err != nil {
		release()
		return nil, nil, err
	}
	closers = append(closers, feeds)

	cache := catalog.NewCache(reqs, catalog.SheetOf(feeds, f.feedsSheet),
		catalog.FeedOptions{HeaderRow: f.headerRow, NameColumn: f.nameColumn}, log.Named("catalog"))

	loadCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if _, err := cache.Get(loadCtx); err != nil {
		release()
		return nil, nil, err
	}

	return nutrition.NewService(cache, log.With(zap.String("component", "nutrition"))), release, nil
}

type closableWorkbook interface {
	catalog.Workbook
	io.Closer
}

func openWorkbook(location string, client *download.APIClient) (closableWorkbook, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return workbook.NewRemote(location, client), nil
	}
	f, err := workbook.Open(location)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func parseFeedArgs(args []string) (models.DietSelection, error) {
	diet := make(models.DietSelection, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 {
			return nil, fmt.Errorf("feed %q: expected NAME=KG", arg)
		}
		kg, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(arg[i+1:]), ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("feed %q: invalid quantity: %w", arg, err)
		}
		if !models.Finite(kg) {
			return nil, fmt.Errorf("feed %q: quantity must be a finite number", arg)
		}
		if kg < 0 {
			return nil, fmt.Errorf("feed %q: quantity must not be negative", arg)
		}
		diet = append(diet, models.DietRow{Feed: strings.TrimSpace(arg[:i]), Kg: kg})
	}
	return diet, nil
}
