package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsisolutions/shopsched/infra/logger"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import jobs from an M2M routing CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("import-command").Errorf("service close: %v", err)
		}
	}()

	result, err := svc.ImportCSV(args[0])
	if err != nil {
		return err
	}

	fmt.Println(result.Summary())
	for _, w := range result.Warnings {
		fmt.Println("warning:", w)
	}
	for _, e := range result.Errors {
		fmt.Println("error:", e)
	}
	if result.HasErrors() {
		return fmt.Errorf("import failed, stored jobs unchanged")
	}
	return nil
}
