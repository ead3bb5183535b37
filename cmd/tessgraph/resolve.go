package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/mjkukula/tessgraph/exomast"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <planet name>",
	Short: "Resolve a planet name to its archive identifiers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := exomast.NewClient(viper.GetString("exomast.base_url"))

		ids, err := client.Identifiers(cmd.Context(), args[0])
		if err != nil {
			return errors.Wrap(err, "resolve")
		}

		keys := make([]string, 0, len(ids))
		for k := range ids {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%s: %v\n", k, ids[k])
		}
		return nil
	},
}

var tceCmd = &cobra.Command{
	Use:   "tce <tic id>",
	Short: "Print the data-validation results table for a TCE",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := exomast.NewClient(viper.GetString("exomast.base_url"))

		tce, _ := cmd.Flags().GetString("tce")
		if tce == "" {
			tces, err := client.TCEList(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "list tces")
			}
			if len(tces) == 0 {
				return errors.New("no TCEs for target")
			}
			tce = tces[0]
		}

		tbl, err := client.TCETable(cmd.Context(), args[0], tce)
		if err != nil {
			return errors.Wrap(err, "tce table")
		}

		return errors.Wrap(tbl.Render(os.Stdout), "render")
	},
}

func init() {
	tceCmd.Flags().String("tce", "", "TCE identifier (default: first available)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(tceCmd)
}
