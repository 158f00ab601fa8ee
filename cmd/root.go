package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenik/install-client/api"
	"github.com/lumenik/install-client/config"
	"github.com/lumenik/install-client/model"
	"github.com/lumenik/install-client/session"
)

const (
	FlagConfig = "config"
	FlagYes    = "yes"
)

// rootCmd is a base command.
var rootCmd = &cobra.Command{
	Use:   "lumenik-client",
	Short: "Lumenik game-installation service client",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("rootCmd.Execute: %v", err)
	}
}

// mustConfig loads the configuration or dies.
func mustConfig(cmd *cobra.Command) config.Config {
	path, err := cmd.Flags().GetString(FlagConfig)
	if err != nil {
		log.Fatalf("%s flag: %v", FlagConfig, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	return cfg
}

// mustStore opens the session store or dies.
func mustStore(cfg config.Config) *session.Store {
	store, err := session.NewStore(cfg.SessionFile)
	if err != nil {
		log.Fatalf("session store init: %v", err)
	}

	return store
}

// mustClient builds the API gateway bound to the session's token.
func mustClient(cfg config.Config, store *session.Store) *api.Client {
	client, err := api.NewClient(cfg.BaseURL, store, api.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		log.Fatalf("api client init: %v", err)
	}

	return client
}

// mustUser returns the stored profile or dies asking for a login.
func mustUser(store *session.Store) model.User {
	user, ok := store.User()
	if !ok {
		log.Fatalf("no active session: run `lumenik-client login` first")
	}

	return user
}

// terminalConfirmer asks y/N on stdin; --yes short-circuits to true.
type terminalConfirmer struct {
	autoYes bool
}

func (c terminalConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if c.autoYes {
		return true, nil
	}

	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}

func newConfirmer(cmd *cobra.Command) terminalConfirmer {
	autoYes, err := cmd.Flags().GetBool(FlagYes)
	if err != nil {
		log.Fatalf("%s flag: %v", FlagYes, err)
	}

	return terminalConfirmer{autoYes: autoYes}
}

// logNotifier renders notices on the standard logger.
func logNotifier(n model.Notice) {
	log.Printf("[%s] %s", strings.ToUpper(string(n.Severity)), n.Message)
}

func init() {
	rootCmd.PersistentFlags().String(FlagConfig, "", "(optional) YAML config file path")
	rootCmd.PersistentFlags().Bool(FlagYes, false, "(optional) answer yes to every confirmation")
}
