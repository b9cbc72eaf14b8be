package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/owenbush/timeular2noko/api"
	"github.com/owenbush/timeular2noko/api/client"
	"github.com/owenbush/timeular2noko/api/http"
	"github.com/owenbush/timeular2noko/cache"
	"github.com/owenbush/timeular2noko/cmd/timeular/utils"
	"github.com/owenbush/timeular2noko/config"
	"github.com/owenbush/timeular2noko/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagOutput = "output"
	flagFrom   = "from"
	flagTo     = "to"
)

var (
	fromFlag string
	toFlag   string
	manager  *config.Manager
	store    *config.FileIO
)

func main() {
	var rootCmd = &cobra.Command{
		Use:               "timeular",
		Short:             "Timeular CLI",
		Long:              "Read activities and time entries from the Timeular API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().Bool(flagDebug, false, "Log every API call as a cURL command")
	rootCmd.PersistentFlags().String(flagConfig, "", "Path to a config.yaml or config.toml file")
	rootCmd.PersistentFlags().StringP(flagOutput, "o", utils.OutputText, "Output format: text, json or yaml")

	for _, name := range []string{flagDebug, flagConfig, flagOutput} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	viper.SetEnvPrefix("timeular")
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newActivitiesCmd(),
		newActivityCmd(),
		newEntriesCmd(),
		newConfigCmd(),
		newLoginCmd(),
		newCompletionCmd(),
	)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	internal.InitLogger()

	if err := rootCmd.Execute(); err != nil {
		zap.S().Errorf("Error: %s", err)
		_ = zap.S().Sync()
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := utils.ValidOutput(viper.GetString(flagOutput)); err != nil {
		return err
	}

	store = config.New()
	if path := viper.GetString(flagConfig); path != "" {
		if _, err := os.Stat(path); err != nil && cmd.Name() != "login" {
			return fmt.Errorf("config file: %w", err)
		}
		store = store.WithConfigPath(path)
	}

	loaded, err := config.NewManager(store)
	if err != nil {
		return err
	}
	if manager, err = loaded.WithEnvironment().WithSecretFile(); err != nil {
		return err
	}

	if isDebug() {
		internal.SetAllowedLogLevels(zapcore.InfoLevel, zapcore.DebugLevel)
	}

	return nil
}

func isDebug() bool {
	return viper.GetBool(flagDebug) || manager.Config.Debug
}

// connect builds a client that terminates the process on any API failure
// and signs it in.
func connect(ctx context.Context) (*client.Client, error) {
	key, secret, err := manager.Credentials()
	if err != nil {
		return nil, err
	}

	c := client.New(http.RealCallerFactory, cache.NewMemoryStore(), manager.Config).
		WithFailureHandler(client.Terminate(zap.S(), os.Exit))
	c.Debug(isDebug())

	if _, err := c.Connect(ctx, key, secret); err != nil {
		return nil, err
	}

	return c, nil
}

func newActivitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "List all activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := connect(cmd.Context())
			if err != nil {
				return err
			}

			activities, err := c.ListActivities(cmd.Context())
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), activities, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tINTEGRATION")
				for _, a := range activities {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Color, a.Integration)
				}
				_ = tw.Flush()
			})
		},
	}
}

func newActivityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity <id>",
		Short: "Show a single activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect(cmd.Context())
			if err != nil {
				return err
			}

			activity, err := c.GetActivity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if activity == nil {
				return fmt.Errorf("activity %q not found", args[0])
			}

			return render(cmd.OutOrStdout(), activity, func(w io.Writer) {
				fmt.Fprintf(w, "id:          %s\n", activity.ID)
				fmt.Fprintf(w, "name:        %s\n", activity.Name)
				fmt.Fprintf(w, "color:       %s\n", activity.Color)
				fmt.Fprintf(w, "integration: %s\n", activity.Integration)
				fmt.Fprintf(w, "space:       %s\n", activity.SpaceID)
			})
		},
	}
}

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List time entries for a range of days",
		Long:  "List time entries from the start of --from up to the end of --to, oldest first. Both default to today.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := utils.ParseRange(fromFlag, toFlag, time.Now(), time.Local)
			if err != nil {
				return err
			}

			c, err := connect(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := c.ListTimeEntries(cmd.Context(), start, end)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), entries, func(w io.Writer) {
				printEntries(w, entries)
			})
		},
	}

	cmd.Flags().StringVar(&fromFlag, flagFrom, "", "First day, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&toFlag, flagTo, "", "Last day, YYYY-MM-DD (default --from)")

	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := manager.ShowConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func render(w io.Writer, v interface{}, text func(io.Writer)) error {
	format := viper.GetString(flagOutput)
	if format == utils.OutputText {
		text(w)
		return nil
	}
	return utils.Encode(w, format, v)
}

func printEntries(w io.Writer, entries []api.TimeEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no time entries")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tDURATION\tACTIVITY\tNOTE")

	totals := make(map[string]int)
	for _, e := range entries {
		name := e.ActivityName()
		if name == "" {
			name = e.ActivityID
		}
		totals[name] += e.Minutes()

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Start().Local().Format("2006-01-02 15:04"),
			utils.FormatMinutes(e.Minutes()),
			name,
			utils.Truncate(e.Note.Text, 60),
		)
	}
	_ = tw.Flush()

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	var sum int
	for _, name := range names {
		sum += totals[name]
		fmt.Fprintf(tw, "%s\t%s\n", name, utils.FormatMinutes(totals[name]))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\n", utils.FormatMinutes(sum))
	_ = tw.Flush()
}
