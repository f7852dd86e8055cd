package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexjbarnes/eas-sync/eas"
	"github.com/spf13/cobra"
)

func newFlagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flag <folder-id> <seen|unseen|flagged|unflagged> <message-id...>",
		Short: "Change the read or flagged state of messages",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			flag, value, err := parseFlagArg(args[1])
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ids := args[2:]
			if err := a.engine.SetFlag(cmd.Context(), args[0], ids, flag, value); err != nil {
				return err
			}

			// Mirror the change locally so the next sync has nothing to apply.
			folder, err := a.state.MessageFolder(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := folder.SetMessageFlag(id, flag, value); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %d messages\n", len(ids))

			return nil
		},
	}
}

func parseFlagArg(s string) (eas.Flag, bool, error) {
	switch strings.ToLower(s) {
	case "seen", "read":
		return eas.FlagSeen, true, nil
	case "unseen", "unread":
		return eas.FlagSeen, false, nil
	case "flagged":
		return eas.FlagFlagged, true, nil
	case "unflagged":
		return eas.FlagFlagged, false, nil
	default:
		return 0, false, fmt.Errorf("unknown flag %q (want seen, unseen, flagged or unflagged)", s)
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <folder-id> <message-id...>",
		Short: "Delete messages on the server",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ids := args[1:]
			if err := a.engine.DeleteMessages(cmd.Context(), args[0], ids); err != nil {
				return err
			}

			folder, err := a.state.MessageFolder(args[0])
			if err != nil {
				return err
			}
			if err := folder.DestroyMessages(ids); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d messages\n", len(ids))

			return nil
		},
	}
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <src-folder-id> <dst-folder-id> <message-id...>",
		Short: "Move messages to another folder",
		Long:  "Moves messages and prints the new id of each moved message. Run sync on both folders afterwards to refresh the local copies.",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			moved, err := a.engine.MoveMessages(cmd.Context(), args[0], args[1], args[2:])

			src := make([]string, 0, len(moved))
			for id := range moved {
				src = append(src, id)
			}
			sort.Strings(src)
			for _, id := range src {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", id, moved[id])
			}

			return err
		},
	}
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <folder-id> <message-id>",
		Short: "Download one message and write its MIME source to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			msg, err := a.engine.FetchMessage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			folder, err := a.state.MessageFolder(args[0])
			if err != nil {
				return err
			}
			if err := folder.SaveCompleteMessage(*msg); err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(msg.Body)

			return err
		},
	}
}

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <folder-id> <file|->",
		Short: "Store an RFC 822 message in a folder without sending it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.engine.UploadMessage(cmd.Context(), args[0], message)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)

			return nil
		},
	}
}
