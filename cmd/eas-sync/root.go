package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eas-sync",
		Short: "Exchange ActiveSync mail sync client",
		Long: `eas-sync - keeps a local copy of an Exchange ActiveSync mailbox.

Account settings come from the environment or a .env file in the working
directory (EAS_HOST, EAS_USERNAME, EAS_PASSWORD, ...). Folder lists, sync
keys and messages are kept in a bbolt database at STATE_PATH.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newFoldersCmd(),
		newSyncCmd(),
		newPushCmd(),
		newSendCmd(),
		newStatusCmd(),
		newFlagCmd(),
		newDeleteCmd(),
		newMoveCmd(),
		newFetchCmd(),
		newUploadCmd(),
	)

	return rootCmd
}
