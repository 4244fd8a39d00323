// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/taibuivan/mediatrack/internal/achievement"
	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/pkg/query"
)

// errUsage is returned after the usage text has been printed.
var errUsage = errors.New("usage")

// Lock names shared with the HTTP triggers.
const (
	lockCalculate = "calculate"
	lockRarity    = "rarity"
)

// app holds what a subcommand may touch.
type app struct {
	service *achievement.Service
	lock    achievement.CalculationLock
	stdout  io.Writer
	stderr  io.Writer
}

// command is one parsed subcommand, ready to run.
type command struct {
	name string
	lock string
	run  func(ctx context.Context, a *app) error
}

const usage = `usage: achievements <command> [flags]

commands:
  migrate      apply database migrations
  seed         reconcile definitions with the built-in catalog
  list         list calculator code names           [-domain movies]
  calculate    evaluate achievements                [-codes a,b] [-users all|active|id,id]
  rarity       recompute tier rarity
  edit         edit display text                    -code X [-name N] [-description D]
  edit-tier    replace a tier's criteria            -code X -difficulty gold -count N [-value V] [-recalculate]
`

// parseCommand turns argv (without the program name) into a [command].
func parseCommand(args []string, stderr io.Writer) (command, error) {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return command{}, errUsage
	}

	name, rest := args[0], args[1:]
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)

	switch name {
	case "migrate":
		return command{name: name}, flags.Parse(rest)

	case "seed":
		if err := flags.Parse(rest); err != nil {
			return command{}, err
		}
		return command{name: name, run: runSeed}, nil

	case "list":
		domainFlag := flags.String("domain", "", "restrict to one domain")
		if err := flags.Parse(rest); err != nil {
			return command{}, err
		}
		var domain media.Domain
		if *domainFlag != "" {
			parsed, err := media.ParseDomain(*domainFlag)
			if err != nil {
				return command{}, err
			}
			domain = parsed
		}
		return command{name: name, run: func(_ context.Context, a *app) error {
			return printCodeNames(a.stdout, a.service.ListCodeNames(domain))
		}}, nil

	case "calculate":
		codes := flags.String("codes", "", "comma separated code names (default: all)")
		users := flags.String("users", "all", `"all", "active" or comma separated user ids`)
		if err := flags.Parse(rest); err != nil {
			return command{}, err
		}
		selector, err := achievement.ParseUserSelector(*users)
		if err != nil {
			return command{}, err
		}
		scope := achievement.Scope{CodeNames: query.List(*codes), Users: selector}
		return command{name: name, lock: lockCalculate, run: func(ctx context.Context, a *app) error {
			report, err := a.service.Calculate(ctx, scope, progressPrinter(a.stderr))
			if err != nil {
				return err
			}
			return printReport(a.stdout, report)
		}}, nil

	case "rarity":
		if err := flags.Parse(rest); err != nil {
			return command{}, err
		}
		return command{name: name, lock: lockRarity, run: func(ctx context.Context, a *app) error {
			tiers, err := a.service.CalculateRarity(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "rarity recomputed for %d tiers\n", tiers)
			return err
		}}, nil

	case "edit":
		code := flags.String("code", "", "achievement code name")
		name := flags.String("name", "", "new display name")
		description := flags.String("description", "", "new description")
		if err := flags.Parse(rest); err != nil {
			return command{}, err
		}

		var patch achievement.AchievementPatch
		flags.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				patch.Name = name
			case "description":
				patch.Description = description
			}
		})
		if *code == "" {
			return command{}, errors.New("edit: -code is required")
		}
		return command{name: "edit", run: func(ctx context.Context, a *app) error {
			updated, err := a.service.UpdateAchievement(ctx, *code, patch)
			return reportUpdate(a.stdout, *code, updated, err)
		}}, nil

	case "edit-tier":
		code := flags.String("code", "", "achievement code name")
		difficultyFlag := flags.String("difficulty", "", "bronze, silver, gold or platinum")
		count := flags.Float64("count", -1, "new threshold")
		value := flags.String("value", "", "new criteria value")
		recalculate := flags.Bool("recalculate", false, "evaluate the achievement for every user afterwards")
		if err := flags.Parse(rest); err != nil {
			return command{}, err
		}
		if *code == "" {
			return command{}, errors.New("edit-tier: -code is required")
		}
		difficulty, err := achievement.ParseDifficulty(*difficultyFlag)
		if err != nil {
			return command{}, err
		}
		if *count < 0 {
			return command{}, errors.New("edit-tier: -count is required and must not be negative")
		}

		criteria := achievement.Criteria{Count: *count, Value: *value}
		lock := ""
		if *recalculate {
			lock = lockCalculate
		}
		return command{name: name, lock: lock, run: func(ctx context.Context, a *app) error {
			updated, err := a.service.UpdateTier(ctx, *code, difficulty, criteria)
			if err := reportUpdate(a.stdout, *code+"/"+difficulty.String(), updated, err); err != nil || !*recalculate {
				return err
			}
			report, err := a.service.Recalculate(ctx, *code)
			if err != nil {
				return err
			}
			return printReport(a.stdout, report)
		}}, nil
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n%s", name, usage)
	return command{}, errUsage
}

// # Output

func runSeed(ctx context.Context, a *app) error {
	report, err := a.service.Seed(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "created %d, updated %d, deleted %d\n", report.Created, report.Updated, report.Deleted)
	return err
}

func printCodeNames(out io.Writer, codeNames []achievement.CodeName) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "DOMAIN\tCODE NAME")
	for _, codeName := range codeNames {
		fmt.Fprintf(writer, "%s\t%s\n", codeName.Domain, codeName.CodeName)
	}
	return writer.Flush()
}

func printReport(out io.Writer, report *achievement.Report) error {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func reportUpdate(out io.Writer, target string, updated bool, err error) error {
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("%s: %w", target, achievement.ErrUnknownCodeName)
	}
	_, err = fmt.Fprintf(out, "%s updated\n", target)
	return err
}

// progressPrinter renders "[done/total]" on one terminal line.
func progressPrinter(out io.Writer) achievement.ProgressFunc {
	return func(done, total int) {
		fmt.Fprintf(out, "\r[%d/%d] achievements evaluated", done, total)
		if done == total {
			fmt.Fprintln(out)
		}
	}
}
