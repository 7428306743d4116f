package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"eternavista/internal/user"
	"eternavista/pkg/config"
	"eternavista/pkg/db"
)

// Resets a user's password from the command line. A missing user is created
// with the admin role, which doubles as a repair tool for a broken admin
// account.
func main() {
	username := flag.String("user", "admin", "username to reset")
	password := flag.String("password", "", "new password (required)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: resetpw -user <name> -password <new password>")
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
		os.Exit(1)
	}

	repo := user.NewRepository(pool)
	updated, err := repo.UpdatePassword(ctx, *username, string(hash))
	if err != nil {
		fmt.Fprintf(os.Stderr, "update failed: %v\n", err)
		os.Exit(1)
	}
	if updated {
		fmt.Printf("password reset for %s\n", *username)
		return
	}

	if _, err := repo.Create(ctx, *username, string(hash), user.RoleAdmin); err != nil {
		fmt.Fprintf(os.Stderr, "create failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("user %s did not exist; created as admin\n", *username)
}
