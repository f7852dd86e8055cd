package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <file|->",
		Short: "Send an RFC 822 message",
		Long:  "Sends a complete RFC 822 message read from a file, or from stdin when the argument is -. The server saves a copy in Sent Items.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.engine.SendMessage(cmd.Context(), message); err != nil {
				return fmt.Errorf("sending message: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent %d bytes\n", len(message))

			return nil
		},
	}
}

func readMessage(name string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}

	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}

	if len(data) == 0 {
		return nil, errors.New("message is empty")
	}

	return data, nil
}
