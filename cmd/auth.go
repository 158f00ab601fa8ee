package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	FlagUsername = "username"
	FlagPassword = "password"
)

// GetLoginCmd returns the authentication command.
func GetLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		Run: func(cmd *cobra.Command, args []string) {
			// Parse inputs
			username, err := cmd.Flags().GetString(FlagUsername)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagUsername, err)
			}
			password, err := cmd.Flags().GetString(FlagPassword)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagPassword, err)
			}
			if username == "" {
				log.Fatalf("%s flag: must be set", FlagUsername)
			}
			if password == "" {
				fmt.Print("Contraseña: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					log.Fatalf("reading password: %v", err)
				}
				password = strings.TrimSpace(line)
			}

			cfg := mustConfig(cmd)
			store := mustStore(cfg)
			client := mustClient(cfg, store)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			defer cancel()

			res, err := client.Login(ctx, username, password)
			if err != nil {
				log.Fatalf("login: %v", err)
			}
			if err := store.Save(res.Token, res.User()); err != nil {
				log.Fatalf("saving session: %v", err)
			}

			fmt.Printf("Sesión iniciada: %s (%s)\n", res.FullName, res.Role)
		},
	}
	cmd.Flags().String(FlagUsername, "", "account username")
	cmd.Flags().String(FlagPassword, "", "(optional) password; prompted when omitted")

	return cmd
}

// GetLogoutCmd returns the session teardown command.
func GetLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the persisted session",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig(cmd)
			store := mustStore(cfg)

			if err := store.Clear(); err != nil {
				log.Fatalf("clearing session: %v", err)
			}

			fmt.Println("Sesión cerrada")
		},
	}
}

// GetWhoamiCmd returns the session inspection command.
func GetWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig(cmd)
			store := mustStore(cfg)

			user, ok := store.User()
			if !ok {
				fmt.Println("Sin sesión activa")
				return
			}

			fmt.Printf("Usuario: %s (%s)\n", user.Username, user.FullName)
			fmt.Printf("Rol:     %s\n", user.Role)
			if store.TokenExpired(time.Now()) {
				fmt.Println("Token:   expirado")
			} else {
				fmt.Println("Token:   vigente")
			}
		},
	}
}

func init() {
	rootCmd.AddCommand(GetLoginCmd())
	rootCmd.AddCommand(GetLogoutCmd())
	rootCmd.AddCommand(GetWhoamiCmd())
}
