package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsisolutions/shopsched/core/schedule"
	"github.com/dsisolutions/shopsched/infra/csvimport"
	"github.com/dsisolutions/shopsched/infra/logger"
	"github.com/dsisolutions/shopsched/pkg/export"
)

var (
	capacityStart string
	capacityDays  int
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Report work center utilization for the scheduling window",
	RunE:  runCapacity,
}

func init() {
	capacityCmd.Flags().StringVar(&capacityStart, "start", "", "window start date (YYYY-MM-DD, default today)")
	capacityCmd.Flags().IntVar(&capacityDays, "days", 14, "number of days to report")
	rootCmd.AddCommand(capacityCmd)
}

func runCapacity(cmd *cobra.Command, args []string) error {
	start, err := parseStartFlag(capacityStart)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("capacity-command").Errorf("service close: %v", err)
		}
	}()

	result, err := svc.RunSchedule(start, 0)
	if err != nil {
		return err
	}
	jobs, err := svc.LoadJobs()
	if err != nil {
		return err
	}

	buckets, err := svc.Utilization(result, csvimport.WorkCenters(jobs), result.ScheduleDate, capacityDays)
	if err != nil {
		return err
	}
	if err := export.WriteUtilizationCSV(cmd.OutOrStdout(), buckets); err != nil {
		return err
	}

	sum := schedule.SummarizeUtilization(buckets)
	fmt.Printf("mean %.1f%%, stddev %.1f%%, peak %.1f%%, p95 %.1f%%\n",
		sum.MeanPercent, sum.StdDevPercent, sum.PeakPercent, sum.P95Percent)
	return nil
}
