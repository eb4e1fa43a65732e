package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsisolutions/shopsched/infra/logger"
)

var explainStart string

var explainCmd = &cobra.Command{
	Use:   "explain <job-number>",
	Short: "Explain why a job landed where it did",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainStart, "start", "", "schedule start date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	jobNumber := args[0]
	start, err := parseStartFlag(explainStart)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("explain-command").Errorf("service close: %v", err)
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

	for _, job := range jobs {
		if job.JobNumber != jobNumber {
			continue
		}
		for _, line := range svc.Scheduler.Explain(job, result) {
			fmt.Println(line)
		}
		return nil
	}
	return fmt.Errorf("job %s not found", jobNumber)
}
