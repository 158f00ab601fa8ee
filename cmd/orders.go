package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lumenik/install-client/api"
	"github.com/lumenik/install-client/catalog"
	"github.com/lumenik/install-client/config"
	"github.com/lumenik/install-client/model"
	"github.com/lumenik/install-client/service/lifecycle"
	"github.com/lumenik/install-client/service/selection"
	"github.com/lumenik/install-client/session"
)

const (
	FlagOrder    = "order"
	FlagCapacity = "capacity"
	FlagGame     = "game"
	FlagAdd      = "add"
	FlagRemove   = "remove"
)

// GetOrdersCmd returns the client-side request command tree.
func GetOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage your installation requests",
	}

	cmd.AddCommand(getOrdersListCmd())
	cmd.AddCommand(getOrdersCreateCmd())
	cmd.AddCommand(getOrdersEditCmd())
	cmd.AddCommand(getOrdersDeleteCmd())

	return cmd
}

// orderWorkbench wires the selection engine, catalog cache and lifecycle
// manager for the logged-in client.
func orderWorkbench(cmd *cobra.Command, cfg config.Config,
	store *session.Store, client *api.Client) (*lifecycle.Manager, *selection.Engine, *catalog.Cache) {

	user := mustUser(store)

	policy := selection.Policy{
		LargeCatalogPlatforms: cfg.LargeCatalogPlatforms,
		MinLargeCatalogGB:     cfg.MinLargeCatalogGB,
	}
	engine := selection.NewEngine(policy, cfg.DefaultPlatform, logNotifier)
	cache := catalog.NewCache()

	manager, err := lifecycle.NewManager(engine, cache, client,
		newConfirmer(cmd), logNotifier, user.ID, cfg.DefaultPlatform)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}

	return manager, engine, cache
}

// loadPlatform fills the cache with the platform's catalog and aims the
// engine at it.
func loadPlatform(ctx context.Context, client *api.Client, engine *selection.Engine,
	cache *catalog.Cache, platform string) error {

	games, err := client.GamesByPlatform(ctx, platform)
	if err != nil {
		return fmt.Errorf("loading %s catalog: %w", platform, err)
	}

	cache.Replace(platform, games)
	engine.SetPlatform(platform)

	return nil
}

// toggleByID resolves each id against the cache and toggles it.
func toggleByID(engine *selection.Engine, cache *catalog.Cache, ids []string) error {
	for _, id := range ids {
		game, ok := cache.Get(id)
		if !ok {
			return fmt.Errorf("game %s: not in the current catalog", id)
		}
		if err := engine.Toggle(game); err != nil {
			return fmt.Errorf("game %s: %w", id, err)
		}
	}

	return nil
}

func printOrder(o model.WorkOrder) {
	fmt.Printf("  %s  [%s]  %s  %d juego(s)  %.1fGB  $%.2f (saldo $%.2f)\n",
		o.ID, o.Status, o.Platform, len(o.GameIDs), o.TotalGB, o.Cost, o.Outstanding())
}

func getOrdersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your requests",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)
			user := mustUser(store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			orders, err := client.OrdersByClient(ctx, user.ID)
			if err != nil {
				log.Fatalf("loading orders: %v", err)
			}

			fmt.Printf("Solicitudes de %s: %d\n", user.Username, len(orders))
			for _, o := range orders {
				printOrder(o)
			}
		},
	}
}

func getOrdersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a request from a capacity budget and a game selection",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			platform, err := cmd.Flags().GetString(FlagPlatform)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagPlatform, err)
			}
			capacity, err := cmd.Flags().GetFloat64(FlagCapacity)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagCapacity, err)
			}
			gameIDs, err := cmd.Flags().GetStringSlice(FlagGame)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagGame, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)
			manager, engine, cache := orderWorkbench(cmd, cfg, store, client)
			if platform == "" {
				platform = cfg.DefaultPlatform
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			if err := loadPlatform(ctx, client, engine, cache, platform); err != nil {
				log.Fatalf("%v", err)
			}

			engine.SetCapacity(capacity)
			if err := toggleByID(engine, cache, gameIDs); err != nil {
				log.Fatalf("%v", err)
			}
			if err := manager.SubmitNew(ctx); err != nil {
				log.Fatalf("submitting request: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagPlatform, "", "(optional) platform, defaults to the configured one")
	cmd.Flags().Float64(FlagCapacity, 0, "storage capacity budget [GB]")
	cmd.Flags().StringSlice(FlagGame, nil, "game id to install (repeatable)")

	return cmd
}

func getOrdersEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a pending request",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			orderID, err := cmd.Flags().GetString(FlagOrder)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagOrder, err)
			}
			addIDs, err := cmd.Flags().GetStringSlice(FlagAdd)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagAdd, err)
			}
			removeIDs, err := cmd.Flags().GetStringSlice(FlagRemove)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagRemove, err)
			}
			if orderID == "" {
				log.Fatalf("%s flag: must be set", FlagOrder)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)
			manager, engine, cache := orderWorkbench(cmd, cfg, store, client)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			if err := manager.BeginEdit(ctx, orderID); err != nil {
				log.Fatalf("opening edit: %v", err)
			}

			// the edit works over the request's own platform catalog
			games, err := client.GamesByPlatform(ctx, engine.Platform())
			if err != nil {
				log.Fatalf("loading catalog: %v", err)
			}
			cache.Replace(engine.Platform(), games)

			if err := toggleByID(engine, cache, removeIDs); err != nil {
				log.Fatalf("%v", err)
			}
			if err := toggleByID(engine, cache, addIDs); err != nil {
				log.Fatalf("%v", err)
			}
			if err := manager.SaveEdit(ctx); err != nil {
				log.Fatalf("saving edit: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagOrder, "", "request id to edit")
	cmd.Flags().StringSlice(FlagAdd, nil, "(optional) game id to add (repeatable)")
	cmd.Flags().StringSlice(FlagRemove, nil, "(optional) game id to remove (repeatable)")

	return cmd
}

func getOrdersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a pending request",
		Run: func(cmd *cobra.Command, args []string) {
			orderID, err := cmd.Flags().GetString(FlagOrder)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagOrder, err)
			}
			if orderID == "" {
				log.Fatalf("%s flag: must be set", FlagOrder)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)
			manager, _, _ := orderWorkbench(cmd, cfg, store, client)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			if err := manager.DeleteOrder(ctx, orderID); err != nil {
				log.Fatalf("deleting request: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagOrder, "", "request id to delete")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetOrdersCmd())
}
