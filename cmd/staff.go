package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/lumenik/install-client/model"
	"github.com/lumenik/install-client/service/ledger"
)

const (
	FlagEmployee = "employee"
	FlagStatus   = "status"
)

// GetStaffCmd returns the employee command tree.
func GetStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Employee work queue",
	}

	cmd.AddCommand(getStaffPendingCmd())
	cmd.AddCommand(getStaffSetStatusCmd())

	return cmd
}

func getStaffPendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List pending requests",
		Run: func(cmd *cobra.Command, args []string) {
			employeeID, err := cmd.Flags().GetString(FlagEmployee)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagEmployee, err)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			orders, err := client.PendingOrders(ctx, employeeID)
			if err != nil {
				log.Fatalf("loading pending orders: %v", err)
			}

			fmt.Printf("Solicitudes pendientes: %d\n", len(orders))
			for _, o := range orders {
				printOrder(o)
			}
		},
	}
	cmd.Flags().String(FlagEmployee, "", "(optional) restrict to requests assigned to an employee")

	return cmd
}

func getStaffSetStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-status",
		Short: "Move a request to another status",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			orderID, err := cmd.Flags().GetString(FlagOrder)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagOrder, err)
			}
			status, err := cmd.Flags().GetString(FlagStatus)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagStatus, err)
			}
			if orderID == "" {
				log.Fatalf("%s flag: must be set", FlagOrder)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			reconciler, err := ledger.NewReconciler(client, newConfirmer(cmd), logNotifier)
			if err != nil {
				log.Fatalf("service init: %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			if err := reconciler.SetStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
				log.Fatalf("setting status: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagOrder, "", "request id")
	cmd.Flags().String(FlagStatus, "", "target status: pendiente|en_progreso|completado|cancelado")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetStaffCmd())
}
