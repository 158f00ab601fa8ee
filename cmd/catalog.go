package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumenik/install-client/catalog"
	"github.com/lumenik/install-client/service/watcher"
)

const (
	FlagPlatform = "platform"
	FlagSearch   = "search"
	FlagSort     = "sort"
	FlagPage     = "page"
)

// GetCatalogCmd returns the catalog browsing command tree.
func GetCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the game catalog",
	}
	cmd.PersistentFlags().String(FlagPlatform, "", "(optional) platform filter, defaults to the configured one")

	cmd.AddCommand(getCatalogListCmd())
	cmd.AddCommand(getCatalogWatchCmd())

	return cmd
}

func getCatalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available games",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			platform, err := cmd.Flags().GetString(FlagPlatform)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagPlatform, err)
			}
			search, err := cmd.Flags().GetString(FlagSearch)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagSearch, err)
			}
			sort, err := cmd.Flags().GetString(FlagSort)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagSort, err)
			}
			page, err := cmd.Flags().GetInt(FlagPage)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagPage, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)
			if platform == "" {
				platform = cfg.DefaultPlatform
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			games, err := client.GamesByPlatform(ctx, platform)
			if err != nil {
				log.Fatalf("loading catalog: %v", err)
			}

			cache := catalog.NewCache()
			cache.Replace(platform, games)

			browser, err := catalog.NewBrowser(cache, cfg.PageSize)
			if err != nil {
				log.Fatalf("browser init: %v", err)
			}
			browser.SetSearch(search)
			browser.SetOrder(catalog.SortOrder(sort))
			for p := 1; p < page; p++ {
				if !browser.Next() {
					break
				}
			}

			fmt.Printf("Catálogo %s, página %d/%d\n", platform, browser.PageNum(), browser.PageCount())
			for _, g := range browser.Page() {
				state := "disponible"
				if !g.Available {
					state = "agotado"
				}
				fmt.Printf("  %-36s  %-30s %7.1fGB  %s\n", g.ID, g.Name, g.SizeGB, state)
			}
		},
	}
	cmd.Flags().String(FlagSearch, "", "(optional) name filter")
	cmd.Flags().String(FlagSort, string(catalog.SortNewest), "(optional) sort: nuevo|peso-menor|peso-mayor|alfabetico")
	cmd.Flags().Int(FlagPage, 1, "(optional) page number")

	return cmd
}

func getCatalogWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the catalog and report changes",
		Run: func(cmd *cobra.Command, args []string) {
			platform, err := cmd.Flags().GetString(FlagPlatform)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagPlatform, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)
			if platform == "" {
				platform = cfg.DefaultPlatform
			}

			cache := catalog.NewCache()
			svc, err := watcher.NewWatcher(client, cache, logNotifier, platform, cfg.PollInterval)
			if err != nil {
				log.Fatalf("service init: %v", err)
			}

			svc.Start()

			// Wait for signal
			signalCh := make(chan os.Signal, 1)
			signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
			<-signalCh

			svc.Stop()
		},
	}
}

func init() {
	rootCmd.AddCommand(GetCatalogCmd())
}
