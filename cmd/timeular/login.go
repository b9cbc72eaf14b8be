package main

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/owenbush/timeular2noko/api/client"
	"github.com/owenbush/timeular2noko/api/http"
	"github.com/owenbush/timeular2noko/cache"
	"github.com/owenbush/timeular2noko/cmd/timeular/utils"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Save your API key and secret to the config file",
		Long:  "Prompt for the Timeular API key and secret, check them against the sign-in endpoint and store them in the config file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			key, secret, err := utils.PromptCredentials(rl)
			if err != nil {
				return err
			}

			// Propagate: a rejected login is wrapped and reported below.
			c := client.New(http.RealCallerFactory, cache.NewMemoryStore(), manager.Config)
			c.Debug(isDebug())
			if _, err := c.Connect(cmd.Context(), key, secret); err != nil {
				return fmt.Errorf("sign-in failed, credentials not saved: %w", err)
			}

			if err := manager.WriteCredentials(key, secret); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "credentials saved to %s\n", store.Path())
			return nil
		},
	}
}
