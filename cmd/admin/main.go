package main

import (
	"context"
	"fmt"
	"os"

	"inkwell/internal/adapters/cli"
	dbadapter "inkwell/internal/adapters/database"
	redisadapter "inkwell/internal/adapters/redis"
	"inkwell/internal/config"
	contactapp "inkwell/internal/core/contact/service"
	groupapp "inkwell/internal/core/group/service"
	userapp "inkwell/internal/core/user/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.InitLogger(cfg.Env)
	defer func() { _ = config.Logger.Sync() }()

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	if err := dbadapter.Migrate(db); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	root := cli.NewRootCommand(cli.Deps{
		Cache:   redisadapter.NewPageCacheRedis(redisClient),
		Group:   groupapp.NewGroupService(dbadapter.NewGroupRepositoryDatabase(db)),
		Contact: contactapp.NewContactService(dbadapter.NewContactRepositoryDatabase(db)),
		User:    userapp.NewUserService(dbadapter.NewUserRepositoryDatabase(db), []byte(cfg.JWTSecret)),
	})
	return root.ExecuteContext(context.Background())
}
