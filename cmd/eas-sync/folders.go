package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexjbarnes/eas-sync/internal/state"
	"github.com/spf13/cobra"
)

func newFoldersCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Refresh and list the server folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !offline {
				if err := a.engine.RefreshFolders(cmd.Context()); err != nil {
					return fmt.Errorf("refreshing folders: %w", err)
				}
			}

			return printFolders(cmd.OutOrStdout(), a.state)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "list the stored folders without contacting the server")

	return cmd
}

func printFolders(w io.Writer, st *state.State) error {
	folders, err := st.AllFolders()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tMESSAGES\tNAME")

	for _, f := range folders {
		mf, err := st.MessageFolder(f.ServerID)
		if err != nil {
			return err
		}

		n, err := mf.Count()
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", f.ServerID, f.Type, n, f.Name)
	}

	return tw.Flush()
}
