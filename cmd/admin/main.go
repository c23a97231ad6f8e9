package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mechanicbook/client"
	"mechanicbook/models"
	"mechanicbook/render"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "admin",
	Short:        "Manage mechanicbook booking requests",
	SilenceUsage: true,
}

var loginFlags struct {
	url   string
	token string
}

var listFlags struct {
	limit int
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the API URL and admin key",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored admin key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := removeConfig(configPath()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the newest jobs",
	RunE:  runList,
}

var doneCmd = &cobra.Command{
	Use:   "done <job-id>",
	Short: "Mark a job as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], string(models.JobStatusDone))
	},
}

var setStatusCmd = &cobra.Command{
	Use:       "set-status <job-id> <pending|done|completed|cancelled>",
	Short:     "Change a job's status",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"pending", "done", "completed", "cancelled"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], args[1])
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginFlags.url, "url", "", "Base URL of the mechanicbook API")
	loginCmd.Flags().StringVar(&loginFlags.token, "token", "", "Admin API key")
	listCmd.Flags().IntVarP(&listFlags.limit, "limit", "n", 0, "Maximum number of jobs to show")

	rootCmd.AddCommand(loginCmd, logoutCmd, listCmd, doneCmd, setStatusCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg := adminConfig{FunctionsURL: loginFlags.url, Token: loginFlags.token}
	if cfg.FunctionsURL == "" || cfg.Token == "" {
		if cfg.FunctionsURL == "" {
			cfg.FunctionsURL = client.DefaultBaseURL
		}
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("API URL").Value(&cfg.FunctionsURL),
			huh.NewInput().Title("Admin key").EchoMode(huh.EchoModePassword).Value(&cfg.Token).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("admin key required")
					}
					return nil
				}),
		)).Run()
		if err != nil {
			return err
		}
	}
	cfg.Token = strings.TrimSpace(cfg.Token)

	// Check the key before saving it.
	api := client.New(cfg.FunctionsURL, client.WithToken(cfg.Token))
	if _, err := api.ListJobs(cmd.Context(), 1); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := saveConfig(configPath(), &cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", cfg.FunctionsURL)
	return nil
}

func apiFromConfig() (*client.Client, error) {
	cfg, err := loadConfig(configPath())
	if err != nil {
		return nil, err
	}
	return client.New(cfg.FunctionsURL, client.WithToken(cfg.Token)), nil
}

func runList(cmd *cobra.Command, _ []string) error {
	api, err := apiFromConfig()
	if err != nil {
		return err
	}
	jobs, err := api.ListJobs(cmd.Context(), listFlags.limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Jobs(jobs))
	return nil
}

func setStatus(cmd *cobra.Command, id, raw string) error {
	status, ok := models.ParseJobStatus(raw)
	if !ok {
		return fmt.Errorf("invalid status %q", raw)
	}
	api, err := apiFromConfig()
	if err != nil {
		return err
	}
	job, err := api.UpdateJobStatus(cmd.Context(), id, status)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.JobLine(*job))
	return nil
}
