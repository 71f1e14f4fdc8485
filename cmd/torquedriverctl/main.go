// Command torquedriverctl is a small operator CLI for exercising a
// torquedriver.Driver by hand: submit a job, poll its status, or kill
// it, without writing a Go program first.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/batchforge/torquedriver"
	"github.com/batchforge/torquedriver/job"
)

var (
	qstatProxyDir string
	debugOutput   string
	setOptions    []string

	rootCmd = &cobra.Command{
		Use:   "torquedriverctl",
		Short: "Operate a Torque/PBS cluster through torquedriver",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&qstatProxyDir, "qstat-proxy-dir", "", "directory to extract the qstat proxy script into (default: OS temp dir)")
	rootCmd.PersistentFlags().StringVar(&debugOutput, "debug-output", "", "Debug Trace file path (enables DEBUG_OUTPUT)")
	rootCmd.PersistentFlags().StringArrayVar(&setOptions, "set", nil, "driver option in KEY=VALUE form, may be repeated")

	rootCmd.AddCommand(submitCmd, statusCmd, killCmd)
}

func newDriver() (*torquedriver.Driver, error) {
	d, err := torquedriver.DriverNew(qstatProxyDir, torquedriver.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	for _, kv := range setOptions {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("--set %q is not in KEY=VALUE form", kv)
		}
		if !d.SetOption(key, value) {
			return nil, fmt.Errorf("--set %s=%s rejected by driver", key, value)
		}
	}
	if debugOutput != "" {
		if !d.SetOption(torquedriver.OptDebugOutput, debugOutput) {
			return nil, fmt.Errorf("could not enable debug output at %q", debugOutput)
		}
	}
	return d, nil
}

var submitCmd = &cobra.Command{
	Use:   "submit <submit-cmd> <run-path> [job-args...]",
	Short: "Submit a job via qsub and print its job id",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		numCPU, _ := cmd.Flags().GetInt("num-cpu")
		name, _ := cmd.Flags().GetString("name")

		d, err := newDriver()
		if err != nil {
			return err
		}
		defer d.Free()

		handle, err := d.Submit(args[0], numCPU, args[1], name, args[2:])
		if err != nil {
			return fmt.Errorf("submit: %w", err)
		}
		fmt.Println(handle.IDString)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Query the status of a previously submitted job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		d, err := newDriver()
		if err != nil {
			return err
		}
		defer d.Free()

		status := d.Status(job.New(id))
		fmt.Println(status.String())
		return nil
	},
}

var killCmd = &cobra.Command{
	Use:   "kill <job-id>",
	Short: "Cancel a previously submitted job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		d, err := newDriver()
		if err != nil {
			return err
		}
		defer d.Free()

		d.Kill(job.New(id))
		return nil
	},
}

func parseJobID(s string) (int64, error) {
	id, ok := torquedriver.ParseQsubStdout([]byte(s))
	if !ok {
		return 0, fmt.Errorf("invalid job id %q", s)
	}
	return id, nil
}

func init() {
	submitCmd.Flags().Int("num-cpu", 1, "number of CPUs the job requires")
	submitCmd.Flags().String("name", "", "job name")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
