package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/vendctl/entity"
	"github.com/s0up4200/vendctl/oauth"
)

var (
	authPrefix string
	authState  string
)

// authCmd groups the OAuth commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Obtain and renew access tokens through OAuth",
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the authorization URL to send a user to",
	Args:  cobra.NoArgs,
	RunE:  runAuthURL,
}

var authExchangeCmd = &cobra.Command{
	Use:   "exchange <code>",
	Short: "Exchange an authorization code for a token",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthExchange,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh <refresh-token>",
	Short: "Renew an access token",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthRefresh,
}

func init() {
	authCmd.PersistentFlags().StringVar(&authPrefix, "prefix", "", "store domain prefix (default from vend.domain_prefix)")
	authURLCmd.Flags().StringVar(&authState, "state", "", "CSRF state to embed (random when empty)")

	authCmd.AddCommand(authURLCmd, authExchangeCmd, authRefreshCmd)
	rootCmd.AddCommand(authCmd)
}

func newOAuthClient() (*oauth.Client, error) {
	client, err := oauth.NewClient(oauth.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURI:  cfg.OAuth.RedirectURI,
		Scopes:       cfg.OAuth.Scopes,
	},
		oauth.WithLogger(logger),
		oauth.WithTimeout(cfg.Vend.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth client: %w", err)
	}
	return client, nil
}

func domainPrefix() string {
	if authPrefix != "" {
		return authPrefix
	}
	return cfg.Vend.DomainPrefix
}

func runAuthURL(cmd *cobra.Command, args []string) error {
	client, err := newOAuthClient()
	if err != nil {
		return err
	}

	authURL, state, err := client.AuthorizationURL(domainPrefix(), authState)
	if err != nil {
		return err
	}

	logger.Info().Str("state", state).Msg("Check this state on the redirect")
	fmt.Fprintln(cmd.OutOrStdout(), authURL)
	return nil
}

func runAuthExchange(cmd *cobra.Command, args []string) error {
	client, err := newOAuthClient()
	if err != nil {
		return err
	}

	token, err := client.Exchange(cmd.Context(), domainPrefix(), args[0])
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, entity.ValueOf(token), nil)
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	client, err := newOAuthClient()
	if err != nil {
		return err
	}

	token, err := client.Refresh(cmd.Context(), domainPrefix(), args[0])
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, entity.ValueOf(token), nil)
}
