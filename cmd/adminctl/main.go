package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	email := createCmd.String("email", "", "admin email")
	password := createCmd.String("password", "", "admin password")

	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	if len(args) < 1 {
		return errUsage
	}

	switch args[0] {
	case "create":
		_ = createCmd.Parse(args[1:])
		if *email == "" || *password == "" {
			return errors.New("create: -email and -password are required")
		}
	case "migrate":
		_ = migrateCmd.Parse(args[1:])
	default:
		return errUsage
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gdb, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if args[0] == "migrate" {
		fmt.Println("migrated")
		return nil
	}

	svc := &service.AuthService{Repo: repo.NewGormRepo(gdb), Events: events.Noop{}}
	admin, err := svc.ProvisionAdmin(ctx, *email, *password)
	if errors.Is(err, service.ErrConflict) {
		return fmt.Errorf("create: admin %s already exists", *email)
	}
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	fmt.Printf("created admin id=%d email=%s\n", admin.ID, admin.Email)
	return nil
}

// openDB connects and migrates so that create works against an empty database too.
func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	gdb, err := db.Open(ctx, db.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		LogLevel:     logger.Silent,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	return gdb, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  adminctl create -email EMAIL -password PASSWORD
  adminctl migrate`)
}
