package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newState()
		themes, err := manager.Themes(cmd.Context(), st)
		if err != nil {
			return err
		}
		active, err := manager.ActiveTheme(cmd.Context(), st)
		if err != nil {
			return err
		}
		if len(themes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), printer.Sprintf("No themes found in %s", manager.Config().Dir))
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, " \tDIR\tNAME\tVERSION\tAUTHOR")
		for _, d := range themes {
			marker := " "
			if d.Dir == active {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, d.Dir, d.Name, d.Version, d.Author)
		}
		return tw.Flush()
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Print the active theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := manager.ActiveTheme(cmd.Context(), newState())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), active)
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate NAME",
	Short: "Load a theme and make it the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := manager.Activate(cmd.Context(), newState(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), printer.Sprintf("Activated theme: %s", args[0]))
		return nil
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Deactivate the active theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newState()
		active, err := manager.ActiveTheme(cmd.Context(), st)
		if err != nil {
			return err
		}
		if err := manager.Deactivate(cmd.Context(), st, active); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), printer.Sprintf("Deactivated theme: %s", active))
		return nil
	},
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot NAME",
	Short: "Print the screenshot URL of a theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := manager.Screenshot(args[0])
		if url == "" {
			return fmt.Errorf("theme %s has no screenshot", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, activeCmd, activateCmd, deactivateCmd, screenshotCmd)
}
