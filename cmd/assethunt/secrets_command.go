package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assethunt-engine/internal/pipeline"
	"assethunt-engine/internal/secrets"
)

func newSecretsCommand(ctx *commandContext) *cobra.Command {
	secretsCmd := &cobra.Command{
		Use:         "secrets",
		Short:       "Manage secrets stored in the OS keychain",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	secretsCmd.AddCommand(newSetTokenCommand(ctx))
	return secretsCmd
}

func newSetTokenCommand(ctx *commandContext) *cobra.Command {
	var token string
	var account string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store the download manager RPC token (reads stdin without --token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			acct := strings.TrimSpace(account)
			if acct == "" {
				acct = cfg.RPC.TokenKeyringAccount
			}
			if acct == "" {
				return pipeline.Wrap(pipeline.ErrConfiguration, "secrets", "", "rpc.token_keyring_account is empty; pass --account", nil)
			}

			tok := strings.TrimSpace(token)
			if tok == "" {
				sc := bufio.NewScanner(cmd.InOrStdin())
				if sc.Scan() {
					tok = strings.TrimSpace(sc.Text())
				}
			}
			if tok == "" {
				return pipeline.Wrap(pipeline.ErrInput, "secrets", "", "token is empty", nil)
			}

			if err := secrets.SetRPCToken(acct, tok); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored RPC token in keychain (service %q, account %q)\n", secrets.KeyringService, acct)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Token value (prefer stdin to keep it out of shell history)")
	cmd.Flags().StringVar(&account, "account", "", "Keychain account (default: rpc.token_keyring_account)")
	return cmd
}
