package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archsim/smpl/cmd/smpl/examples"
	"github.com/archsim/smpl/kernel"
	"github.com/archsim/smpl/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the single-server queue tutorial model.",
	Run: func(cmd *cobra.Command, args []string) {
		customers, _ := cmd.Flags().GetInt("customers")
		interarrival, _ := cmd.Flags().GetFloat64("interarrival")
		service, _ := cmd.Flags().GetFloat64("service")
		traceOn, _ := cmd.Flags().GetBool("trace")
		csvPath, _ := cmd.Flags().GetString("csv")

		k := kernel.New()

		if traceOn {
			k.Trace(true)
		}
		if csvPath != "" {
			writer := tracing.NewCSVTraceWriter(csvPath)
			writer.Init()
			k.AcceptHook(writer)
		}

		result, err := examples.RunQueue(k, customers, interarrival, service)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		k.Report()
		fmt.Printf("\nran %d customers: utilization=%.4f mean queue length=%.4f\n",
			result.Customers, result.Utilization, result.MeanQueue)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("customers", 1000, "number of customers to simulate")
	runCmd.Flags().Float64("interarrival", 1.0, "mean interarrival time")
	runCmd.Flags().Float64("service", 0.8, "mean service time")
	runCmd.Flags().Bool("trace", false, "print a trace line for every kernel operation")
	runCmd.Flags().String("csv", "", "write a CSV trace to this path (without extension)")
}
