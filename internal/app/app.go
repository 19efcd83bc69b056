package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shop-bench/internal/config"
	"shop-bench/internal/country"
	"shop-bench/internal/dispatch"
	"shop-bench/internal/monitor"
	"shop-bench/internal/notifier"
	"shop-bench/internal/order"
	"shop-bench/internal/reconcile"
	"shop-bench/internal/seller"
	"shop-bench/internal/store"
	"shop-bench/internal/transport"
)

// App 聚合核心依赖并驱动系统生命周期。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger, store *store.Store) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
}

// Run 组装各组件并阻塞运行，直到收到退出信号。
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("压测系统已初始化",
		zap.String("environment", a.cfg.App.Environment),
		zap.Int("seed_sellers", len(a.cfg.Sellers)),
		zap.Int("monitor_port", a.cfg.Monitor.Port),
	)

	monitorSvc, err := monitor.NewService(a.store, a.logger)
	if err != nil {
		return err
	}

	directory := seller.NewDirectory()
	for _, seed := range a.cfg.Sellers {
		s, err := seller.New(seed.Name, seed.URL)
		if err != nil {
			a.logger.Warn("预注册卖家失败",
				zap.String("name", seed.Name),
				zap.Error(err),
			)
			continue
		}
		directory.Add(s)
		monitorSvc.RecordRegistration(ctx, monitor.RegistrationPayload{
			Seller:   s.Name,
			Hostname: s.Hostname,
			Port:     s.Port,
			Path:     s.Path,
		})
	}

	client := transport.NewClient(a.cfg.Transport, a.logger)
	notif := notifier.New(client, a.logger)

	reconciler, err := reconcile.New(directory, notif, monitorSvc, a.logger)
	if err != nil {
		return err
	}

	generator := order.NewGenerator(country.NewTable(), 0)

	table := dispatch.DefaultTable()
	if a.cfg.Scheduler.StandardInterval > 0 {
		table.StandardInterval = a.cfg.Scheduler.StandardInterval
	}
	if a.cfg.Scheduler.HalfPriceInterval > 0 {
		table.HalfPriceInterval = a.cfg.Scheduler.HalfPriceInterval
	}
	if a.cfg.Scheduler.PayThePriceInterval > 0 {
		table.PayThePriceInterval = a.cfg.Scheduler.PayThePriceInterval
	}

	scheduler, err := dispatch.NewScheduler(table, directory, generator, client, reconciler, monitorSvc, nil, a.logger)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return runMonitorServer(groupCtx, monitorSvc, directory, a.cfg.Monitor.Port, a.logger)
	})

	group.Go(func() error {
		return scheduler.Run(groupCtx)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	a.logger.Info("系统收到退出信号，正在停止")
	return nil
}
