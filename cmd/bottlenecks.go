package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsisolutions/shopsched/infra/logger"
)

var (
	bottleneckStart     string
	bottleneckThreshold float64
)

var bottlenecksCmd = &cobra.Command{
	Use:   "bottlenecks",
	Short: "List the most loaded work centers",
	RunE:  runBottlenecks,
}

func init() {
	bottlenecksCmd.Flags().StringVar(&bottleneckStart, "start", "", "schedule start date (YYYY-MM-DD, default today)")
	bottlenecksCmd.Flags().Float64Var(&bottleneckThreshold, "threshold", 90, "utilization threshold percent")
	rootCmd.AddCommand(bottlenecksCmd)
}

func runBottlenecks(cmd *cobra.Command, args []string) error {
	start, err := parseStartFlag(bottleneckStart)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("bottlenecks-command").Errorf("service close: %v", err)
		}
	}()

	result, err := svc.RunSchedule(start, 0)
	if err != nil {
		return err
	}

	loads := svc.Scheduler.BottleneckWorkCenters(result, bottleneckThreshold)
	if len(loads) == 0 {
		fmt.Println("No scheduled work in the window")
		return nil
	}
	for _, l := range loads {
		fmt.Printf("%-10s %8.1f h\n", l.WorkCenterCode, l.TotalHours)
	}
	return nil
}
