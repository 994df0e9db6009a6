// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/mavi-puzzle/auth"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random admin key",
		Long: `Print a new admin key. Set it as ADMIN_KEY on the server and send it
in the X-Admin-Key header on admin requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := auth.GenerateAdminKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
