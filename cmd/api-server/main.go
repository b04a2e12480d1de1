package main

import (
	"Agora/config"
	"Agora/pkg/database"
	"Agora/pkg/log"
	"Agora/pkg/rocketmq"
	"Agora/pkg/server"
	"Agora/service"
	"Agora/types"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Jobs 命令行任务依赖
type Jobs struct {
	Config   *config.Config
	DB       *gorm.DB
	Stats    service.ITopicStatsService
	Activity service.IActivityService
}

func loadConfig(ctx *cli.Context) *config.Config {
	path := ctx.String("config")
	if path == "" {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		path = fmt.Sprintf("configs/config.%s.yaml", env)
	}
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	return cfg
}

func withJobs(fn func(ctx *cli.Context, jobs *Jobs) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		jobs, cleanup, err := InitJobs(loadConfig(ctx))
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(ctx, jobs)
	}
}

func main() {
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "topic recommendation and topic stats service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file, defaults to configs/config.$APP_ENV.yaml"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					appProvider, cleanup, err := InitServer(loadConfig(ctx))
					if err != nil {
						return err
					}
					defer cleanup()
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "refresh-stats",
				Usage: "recompute stats for every active topic and rebuild all ranks",
				Action: withJobs(func(ctx *cli.Context, jobs *Jobs) error {
					resp, err := jobs.Stats.RefreshAllStats(ctx.Context)
					if err != nil {
						return err
					}
					log.L.Info("refresh-stats done", zap.Any("result", resp))
					return nil
				}),
			},
			{
				Name:  "refresh-top",
				Usage: "recompute stats for the current top-n topics by popularity and re-rank",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "n", Usage: "number of topics, defaults to stats.top_n"},
				},
				Action: withJobs(func(ctx *cli.Context, jobs *Jobs) error {
					resp, err := jobs.Stats.RefreshTopStats(ctx.Context, ctx.Int("n"))
					if err != nil {
						return err
					}
					log.L.Info("refresh-top done", zap.Any("result", resp))
					return nil
				}),
			},
			{
				Name:  "purge-activity",
				Usage: "delete activity rows older than stats.activity_retention_days",
				Action: withJobs(func(ctx *cli.Context, jobs *Jobs) error {
					_, err := jobs.Activity.PurgeExpired(ctx.Context)
					return err
				}),
			},
			{
				Name:  "consume-activity",
				Usage: "consume topic activity events from rocketmq",
				Action: withJobs(func(ctx *cli.Context, jobs *Jobs) error {
					sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGTERM, syscall.SIGINT)
					defer stop()
					return rocketmq.ConsumeActivity(sigCtx, config.ProvideRocketMQConfig(jobs.Config), func(c context.Context, event *types.ActivityEvent) error {
						err := jobs.Activity.HandleEvent(c, event)
						if errors.Is(err, service.ErrInvalidActivityType) {
							log.L.Warn("drop activity event", zap.Any("event", event), zap.Error(err))
							return nil
						}
						return err
					})
				}),
			},
			{
				Name:  "migrate",
				Usage: "create or update tables",
				Action: func(ctx *cli.Context) error {
					db := database.NewDB(loadConfig(ctx))
					if err := database.Migrate(db); err != nil {
						return err
					}
					log.L.Info("migrate done")
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("command failed", zap.Error(err))
	}
}
