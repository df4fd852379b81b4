package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/avdiagram/catalog-backend/internal/auth"
	"github.com/avdiagram/catalog-backend/pkg/config"
	"github.com/avdiagram/catalog-backend/pkg/db"
	"github.com/avdiagram/catalog-backend/pkg/logger"
)

// Operator tool that creates the super admin account, or resets its password
// when the username already exists.
func main() {
	logg := logger.New(logger.Options{ServiceName: "create-superadmin"})

	_ = godotenv.Load()

	username := flag.String("username", "", "super admin username (prompted when omitted)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	name := strings.TrimSpace(*username)
	if name == "" {
		name, err = promptLine("Username: ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "read username: %v\n", err)
			os.Exit(1)
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read password: %v\n", err)
		os.Exit(1)
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read password confirmation: %v\n", err)
		os.Exit(1)
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "passwords do not match")
		os.Exit(1)
	}

	svc, err := auth.NewProvisionService(auth.ProvisionServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create provisioning service", err)
		os.Exit(1)
	}

	user, err := svc.ProvisionSuperAdmin(context.Background(), auth.ProvisionSuperAdminRequest{
		Username: name,
		Password: password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "provision super admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("super admin '%s' ready (id %s)\n", user.Username, user.ID)
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
