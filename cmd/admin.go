package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lumenik/install-client/api"
	"github.com/lumenik/install-client/model"
	"github.com/lumenik/install-client/service/ledger"
)

const (
	FlagUser   = "user"
	FlagRole   = "role"
	FlagAmount = "amount"
	FlagCost   = "cost"
)

// GetAdminCmd returns the administrator command tree.
func GetAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator operations",
	}

	cmd.AddCommand(getAdminUsersCmd())
	cmd.AddCommand(getAdminPaymentsCmd())
	cmd.AddCommand(getAdminStatsCmd())

	return cmd
}

func getAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			role, err := cmd.Flags().GetString(FlagRole)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagRole, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			var users []model.User
			if role == "" {
				users, err = client.Users(ctx)
			} else {
				users, err = client.UsersByRole(ctx, model.Role(role))
			}
			if err != nil {
				log.Fatalf("loading users: %v", err)
			}

			fmt.Printf("Usuarios: %d\n", len(users))
			for _, u := range users {
				state := model.UserActive
				if !u.Active() {
					state = model.UserInactive
				}
				fmt.Printf("  %-36s  %-20s %-15s %s\n", u.ID, u.Username, u.Role, state)
			}
		},
	}
	list.Flags().String(FlagRole, "", "(optional) filter: cliente|empleado|administrador")

	setState := func(use, short, state string) *cobra.Command {
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Run: func(cmd *cobra.Command, args []string) {
				userID, err := cmd.Flags().GetString(FlagUser)
				if err != nil {
					log.Fatalf("%s flag: %v", FlagUser, err)
				}
				if userID == "" {
					log.Fatalf("%s flag: must be set", FlagUser)
				}

				cfg := mustConfig(cmd)
				store := mustStore(cfg)
				client := mustClient(cfg, store)

				ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
				defer cancel()

				if err := client.SetUserState(ctx, userID, state); err != nil {
					log.Fatalf("setting user state: %v", err)
				}

				fmt.Printf("Usuario %s: %s\n", userID, state)
			},
		}
		c.Flags().String(FlagUser, "", "account id")

		return c
	}

	cmd.AddCommand(list)
	cmd.AddCommand(setState("activate", "Re-enable an account", model.UserActive))
	cmd.AddCommand(setState("deactivate", "Disable an account", model.UserInactive))

	return cmd
}

// openLedger builds a reconciler with the target order loaded.
func openLedger(ctx context.Context, cmd *cobra.Command, client *api.Client, orderID string) *ledger.Reconciler {
	reconciler, err := ledger.NewReconciler(client, newConfirmer(cmd), logNotifier)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}

	if _, err := reconciler.Open(ctx, orderID); err != nil {
		log.Fatalf("opening order: %v", err)
	}

	return reconciler
}

func getAdminPaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Reconcile request balances",
	}
	cmd.PersistentFlags().String(FlagOrder, "", "request id")

	orderID := func(c *cobra.Command) string {
		id, err := c.Flags().GetString(FlagOrder)
		if err != nil {
			log.Fatalf("%s flag: %v", FlagOrder, err)
		}
		if id == "" {
			log.Fatalf("%s flag: must be set", FlagOrder)
		}

		return id
	}

	record := &cobra.Command{
		Use:   "record",
		Short: "Record a partial payment",
		Run: func(cmd *cobra.Command, args []string) {
			amount, err := cmd.Flags().GetFloat64(FlagAmount)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagAmount, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			reconciler := openLedger(ctx, cmd, client, orderID(cmd))
			if err := reconciler.RecordPayment(ctx, amount); err != nil {
				log.Fatalf("recording payment: %v", err)
			}

			printBalance(reconciler.Order())
		},
	}
	record.Flags().Float64(FlagAmount, 0, "payment amount")

	payRemaining := &cobra.Command{
		Use:   "pay-remaining",
		Short: "Settle the outstanding balance",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			reconciler := openLedger(ctx, cmd, client, orderID(cmd))
			if err := reconciler.PayRemaining(ctx); err != nil {
				log.Fatalf("paying remaining: %v", err)
			}

			printBalance(reconciler.Order())
		},
	}

	assignDebt := &cobra.Command{
		Use:   "assign-debt",
		Short: "Replace the request's cost",
		Run: func(cmd *cobra.Command, args []string) {
			cost, err := cmd.Flags().GetFloat64(FlagCost)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagCost, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			reconciler := openLedger(ctx, cmd, client, orderID(cmd))
			if err := reconciler.ReassignDebt(ctx, cost); err != nil {
				log.Fatalf("assigning debt: %v", err)
			}

			printBalance(reconciler.Order())
		},
	}
	assignDebt.Flags().Float64(FlagCost, 0, "new total cost")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Wipe the payment history",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			reconciler := openLedger(ctx, cmd, client, orderID(cmd))
			if err := reconciler.ClearPayments(ctx); err != nil {
				log.Fatalf("clearing payments: %v", err)
			}

			printBalance(reconciler.Order())
		},
	}

	cmd.AddCommand(record)
	cmd.AddCommand(payRemaining)
	cmd.AddCommand(assignDebt)
	cmd.AddCommand(clear)

	return cmd
}

func printBalance(o model.WorkOrder) {
	settled := "no"
	if o.FullyPaid() {
		settled = "sí"
	}
	fmt.Printf("Costo $%.2f, pagado $%.2f, saldo $%.2f, liquidado: %s\n",
		o.Cost, o.AmountPaid, o.Outstanding(), settled)
}

func getAdminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			users, err := client.UserStats(ctx)
			if err != nil {
				log.Fatalf("loading user stats: %v", err)
			}
			games, err := client.GameStats(ctx)
			if err != nil {
				log.Fatalf("loading game stats: %v", err)
			}
			orders, err := client.OrderStats(ctx)
			if err != nil {
				log.Fatalf("loading order stats: %v", err)
			}

			fmt.Printf("Usuarios:    %d (%d activos)\n", users.TotalUsers, users.Active)
			fmt.Printf("Juegos:      %d (%.1fGB en total)\n", games.TotalGames, games.TotalSizeGB)
			for platform, count := range games.PerPlatform {
				fmt.Printf("  - %-5s %d\n", platform, count)
			}
			fmt.Printf("Solicitudes: %d (%d completadas, %d pendientes)\n",
				orders.TotalOrders, orders.Completed, orders.Pending)
			fmt.Printf("Ingresos:    $%.2f\n", orders.Income)
		},
	}
}

func init() {
	rootCmd.AddCommand(GetAdminCmd())
}
