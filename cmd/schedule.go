package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dsisolutions/shopsched/core/model"
	"github.com/dsisolutions/shopsched/infra/logger"
	"github.com/dsisolutions/shopsched/pkg/export"
)

var (
	scheduleStart   string
	scheduleHorizon int
	scheduleOut     string
	scheduleFormat  string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the scheduler over the stored jobs",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleStart, "start", "", "schedule start date (YYYY-MM-DD, default today)")
	scheduleCmd.Flags().IntVar(&scheduleHorizon, "horizon", 0, "scheduling horizon in days (default from config)")
	scheduleCmd.Flags().StringVarP(&scheduleOut, "output", "o", "", "write the schedule to a file instead of stdout")
	scheduleCmd.Flags().StringVar(&scheduleFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(scheduleCmd)
}

func parseStartFlag(s string) (model.Date, error) {
	if s == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(s)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start, err := parseStartFlag(scheduleStart)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("schedule-command").Errorf("service close: %v", err)
		}
	}()
	svc.Start(ctx)

	result, err := svc.RunSchedule(start, scheduleHorizon)
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled %d operations starting %s\n", len(result.ScheduledOperations), result.ScheduleDate)
	fmt.Printf("Jobs on time: %d, jobs late: %d, blocked: %d\n", result.JobsOnTime, result.JobsLate, len(result.BlockedJobs))
	for _, note := range result.Notes {
		fmt.Println("note:", note)
	}

	snap := result.Snapshot()
	out := cmd.OutOrStdout()
	if scheduleOut != "" {
		f, err := os.Create(scheduleOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	switch strings.ToLower(scheduleFormat) {
	case "csv":
		return export.WriteCSV(out, snap)
	case "json":
		if scheduleOut == "" {
			return nil
		}
		return export.WriteJSON(out, snap)
	default:
		return fmt.Errorf("unknown format: %s", scheduleFormat)
	}
}
