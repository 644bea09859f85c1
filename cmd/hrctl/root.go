package main

import (
	"io"
	"strings"

	"go-hrgql/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the state shared by every subcommand.
type cli struct {
	out    io.Writer
	v      *viper.Viper
	api    *client.Client
	tokens *client.TokenStore
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, v: viper.New()}

	root := &cobra.Command{
		Use:   "hrctl",
		Short: "Command-line client for the HR records GraphQL API",
		Long: `Command-line client for the HR records GraphQL API.
Environment variables:
  HRCTL_ENDPOINT=http://localhost:4000/graphql
  HRCTL_TOKENFILE=~/.hrctl_token`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().String("endpoint", client.DefaultEndpoint, "GraphQL endpoint URL")
	root.PersistentFlags().String("tokenfile", "", "file holding the session token (default ~/"+client.DefaultTokenFile+")")
	_ = c.v.BindPFlag("endpoint", root.PersistentFlags().Lookup("endpoint"))
	_ = c.v.BindPFlag("tokenfile", root.PersistentFlags().Lookup("tokenfile"))
	c.v.SetEnvPrefix("HRCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.registerCmd(),
		c.whoamiCmd(),
		c.passwdCmd(),
		c.employeesCmd(),
		c.managersCmd(),
		c.statsCmd(),
		c.catalogCmd("departments", "List distinct departments", (*client.Client).Departments),
		c.catalogCmd("positions", "List distinct positions", (*client.Client).Positions),
	)

	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	store, err := client.NewTokenStore(c.v.GetString("tokenfile"))
	if err != nil {
		return err
	}
	token, err := store.Load()
	if err != nil {
		return err
	}

	c.tokens = store
	c.api = client.New(c.v.GetString("endpoint"), client.WithToken(token))
	return nil
}
