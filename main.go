package main

import (
	"fmt"
	"os"

	"github.com/mediacat/bulk-scraper/client"
	"github.com/mediacat/bulk-scraper/common"
	"github.com/mediacat/bulk-scraper/plugin"
	"github.com/mediacat/bulk-scraper/scrape"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serverScheme  string
	serverHost    string
	serverPort    int
	sessionCookie string
)

// rootCmd runs the plugin protocol: the host writes the invocation envelope
// on stdin and expects {"output":"ok"} on stdout.
var rootCmd = &cobra.Command{
	Use:   "bulk-scraper",
	Short: "Batch metadata scraper for a media catalog server",
	Long: `bulk-scraper selects catalog items marked with control tags, scrapes
metadata for them through the catalog server's scraper registry, and merges
the results back into the catalog.

Run without a subcommand it speaks the plugin host protocol on stdin/stdout.
The subcommands run a single mode against an explicitly configured server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := plugin.ReadEnvelope(os.Stdin)
		if err != nil {
			return err
		}
		if err := runMode(cmd, env.ServerConnection, env.Args.Mode); err != nil {
			return err
		}
		return plugin.WriteOK(os.Stdout)
	},
}

// runMode loads the configuration and executes one mode to completion.
func runMode(cmd *cobra.Command, conn client.Connection, mode string) error {
	cfg, err := common.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	controller := scrape.NewController(client.NewCatalogClient(conn), cfg)
	return controller.Run(cmd.Context(), mode)
}

// modeCommand builds a subcommand running one mode against the server named
// by the connection flags, for operator use outside the plugin host.
func modeCommand(use, short, mode string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn := client.Connection{
				Scheme:        serverScheme,
				Domain:        serverHost,
				Port:          serverPort,
				SessionCookie: client.SessionCookie{Value: sessionCookie},
			}
			return runMode(cmd, conn, mode)
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverScheme, "scheme", "http", "catalog server URL scheme")
	rootCmd.PersistentFlags().StringVar(&serverHost, "host", "localhost", "catalog server host")
	rootCmd.PersistentFlags().IntVar(&serverPort, "port", 9999, "catalog server port")
	rootCmd.PersistentFlags().StringVar(&sessionCookie, "session-cookie", "", "session cookie value for authentication")

	rootCmd.AddCommand(
		modeCommand("create", "Create the scrape control tags", scrape.ModeCreate),
		modeCommand("remove", "Remove the scrape control tags", scrape.ModeRemove),
		modeCommand("url-scrape", "Scrape items tagged for bulk URL scraping", scrape.ModeURLScrape),
		modeCommand("fragment-scrape", "Scrape items tagged for specific scrapers", scrape.ModeFragmentScrape),
		modeCommand("movie-scrape", "Scrape movies missing a front image by URL", scrape.ModeMovieScrape),
	)
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Bulk scraper failed")
	}
}
