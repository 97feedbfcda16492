package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-pos-cart/internal/catalog"
	"go-pos-cart/internal/checkout"
	"go-pos-cart/internal/config"
	"go-pos-cart/internal/events"
	"go-pos-cart/internal/model"
	"go-pos-cart/internal/notify"
	"go-pos-cart/internal/pricing"
	"go-pos-cart/internal/receipt"
	"go-pos-cart/internal/repository"
	"go-pos-cart/internal/service"
	"go-pos-cart/pkg/database"
	"go-pos-cart/pkg/logger"
	"go-pos-cart/pkg/txid"

	"go.uber.org/zap"
)

func main() {
	items := flag.String("items", "1,1,2", "comma separated catalog ids to ring up")
	pay := flag.String("pay", "cash", "payment method: cash, card or qr")
	flag.Parse()

	// 1. Load Env
	cfg, loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()
	if !loaded {
		log.Warn(".env file not found, relying on process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, strings.Split(*items, ","), *pay); err != nil {
		log.Error("pos demo failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, itemIDs []string, pay string) error {
	// 2. Catalog source
	provider, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}

	// 3. Notification hub
	hub := notify.NewHub(log.Named("notify"))
	hubCtx, stopHub := context.WithCancel(ctx)
	go hub.Run(hubCtx)
	defer func() {
		stopHub()
		<-hub.Done()
	}()
	hub.Register(notify.NewLogSubscriber(log.Named("toast"), cfg.CurrencySymbol))

	// 4. Wiring
	calc, err := pricing.NewCalculator(cfg.TaxRate)
	if err != nil {
		return err
	}
	renderer := receipt.NewTextRenderer(cfg.Header(), cfg.CurrencySymbol)
	renderer.Width = cfg.ReceiptWidth
	dashboard := service.NewDashboardService()
	audit := log.Named("events")
	sink := events.Multi(hub, events.SinkFunc(func(e events.Event) {
		audit.Debug("event", zap.String("type", string(e.Type)), zap.String("item_id", e.ItemID))
	}))
	co := checkout.NewService(
		txid.New(txid.WithPrefix(cfg.TxnPrefix)),
		checkout.WithLogger(log.Named("checkout")),
		checkout.WithObserver(sink),
	)
	pos, err := service.NewPOSService(ctx, provider, calc, co, renderer,
		service.WithEvents(sink),
		service.WithRecorder(dashboard),
		service.WithLogger(log.Named("pos")),
	)
	if err != nil {
		return err
	}

	// 5. Ring up the session
	for _, id := range itemIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := pos.Add(ctx, id); err != nil {
			log.Warn("item not added", zap.String("item_id", id), zap.Error(err))
		}
	}

	view := pos.Cart()
	log.Info("cart ready",
		zap.Int("lines", len(view.Lines)),
		zap.Int("items", view.Totals.ItemCount),
		zap.String("total", pricing.FormatMoney(cfg.CurrencySymbol, view.Totals.Total)),
	)

	method, err := model.ParsePaymentMethod(pay)
	if err != nil {
		return err
	}
	res, err := pos.Checkout(method)
	if err != nil {
		return err
	}
	fmt.Println(res.Receipt)

	stats, err := json.MarshalIndent(dashboard.GetDashboardStats(5), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(stats))

	for _, tx := range dashboard.GetTransactions() {
		log.Info("session sale",
			zap.String("transaction_id", tx.ID()),
			zap.String("payment_method", tx.PaymentMethod().String()),
			zap.String("total", pricing.FormatMoney(cfg.CurrencySymbol, tx.Total())))
	}
	return nil
}

func openCatalog(cfg *config.Config, log *zap.Logger) (catalog.Provider, error) {
	if !cfg.Database.Enabled() {
		log.Info("no database configured, using built-in catalog")
		return catalog.NewMemoryCatalog(catalog.DefaultItems())
	}
	db, err := database.ConnectDB(cfg.Database.DSN(), log.Named("db"))
	if err != nil {
		return nil, err
	}
	return catalog.NewRepositoryCatalog(repository.NewProductRepo(db)), nil
}
