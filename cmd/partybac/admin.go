package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/partybac/internal/common/password"
	"github.com/KirkDiggler/partybac/internal/config"
	partyRepo "github.com/KirkDiggler/partybac/internal/repositories/party"
	"github.com/spf13/cobra"
)

func newPartiesCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parties",
		Short: "List stored party snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			repo, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			ids, err := repo.ListParties(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newResetCmd(envFile *string) *cobra.Command {
	var (
		partyID string
		yes     bool
	)
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored snapshot of a party",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			if partyID == "" {
				partyID = cfg.PartyID
			}
			if !yes {
				return fmt.Errorf("refusing to delete party %q without --yes", partyID)
			}

			repo, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := repo.DeleteSnapshot(cmd.Context(), &partyRepo.DeleteSnapshotInput{PartyID: partyID}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "party %s reset\n", partyID)
			return nil
		},
	}
	cmd.Flags().StringVar(&partyID, "party", "", "party ID (defaults to PARTY_ID)")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for RESET_PASSWORD_HASH, reading the password from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password on stdin")
			}
			plain := strings.TrimRight(line, "\r\n")
			if plain == "" {
				return errors.New("password cannot be empty")
			}
			hash, err := password.Hash(plain)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
