// Command ingest imports transactions into the tracker: CSV statement
// files, manual entries, and card-notification mail.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/service"
	"github.com/kakeibo-dev/kakeibo/internal/domain/insights"
	"github.com/kakeibo-dev/kakeibo/pkg/config"
	"github.com/kakeibo-dev/kakeibo/pkg/money"
)

func main() {
	var (
		file      = flag.String("file", "", "CSV statement file to import")
		account   = flag.String("account", "", "account label for imported rows")
		wallet    = flag.String("wallet", "", "wallet label for imported rows")
		add       = flag.Bool("add", false, "add a manual entry")
		date      = flag.String("date", "", "manual entry date (YYYY-MM-DD)")
		amount    = flag.Int64("amount", 0, "manual entry amount in yen")
		desc      = flag.String("desc", "", "manual entry description")
		category  = flag.String("category", "", "manual entry category (optional)")
		income    = flag.Bool("income", false, "manual entry is income")
		syncMail  = flag.Bool("sync-mail", false, "ingest pending notification mail once")
		serveCron = flag.Bool("serve-cron", false, "run the mail sync scheduler")

		report     = flag.String("report", "", "write a monthly summary for YYYY-MM")
		monthlyInc = flag.Int64("monthly-income", 0, "declared monthly income in yen")
		fixedCosts = flag.Int64("fixed-costs", 0, "fixed monthly costs in yen")
		savings    = flag.Int64("savings", 0, "savings target in yen")
		out        = flag.String("out", "summary.xlsx", "report output path")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger, runOptions{
		file:      *file,
		account:   *account,
		wallet:    *wallet,
		add:       *add,
		date:      *date,
		amount:    *amount,
		desc:      *desc,
		category:  *category,
		income:    *income,
		syncMail:  *syncMail,
		serveCron: *serveCron,

		report:     *report,
		monthlyInc: *monthlyInc,
		fixedCosts: *fixedCosts,
		savings:    *savings,
		out:        *out,
	}); err != nil {
		logger.Error("ingest failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type runOptions struct {
	file      string
	account   string
	wallet    string
	add       bool
	date      string
	amount    int64
	desc      string
	category  string
	income    bool
	syncMail  bool
	serveCron bool

	report     string
	monthlyInc int64
	fixedCosts int64
	savings    int64
	out        string
}

func run(logger *slog.Logger, opts runOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	account := opts.account
	if account == "" {
		account = cfg.Import.DefaultAccount
	}
	wallet := opts.wallet
	if wallet == "" {
		wallet = cfg.Import.DefaultWallet
	}

	switch {
	case opts.file != "":
		return importFile(ctx, deps.ImportService, opts.file, account, wallet)
	case opts.add:
		return addEntry(ctx, deps.ImportService, opts, account, wallet)
	case opts.syncMail:
		summary, err := deps.ImportService.SyncMail(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("mail sync: %d inserted, %d duplicates, %d unrecognized\n",
			summary.Inserted, summary.Skipped, summary.RowsSkipped)
		return nil
	case opts.serveCron:
		if err := deps.Scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		<-ctx.Done()
		<-deps.Scheduler.Stop().Done()
		return nil
	case opts.report != "":
		return writeReport(ctx, deps, opts)
	default:
		flag.Usage()
		return fmt.Errorf("one of -file, -add, -sync-mail, -serve-cron, -report is required")
	}
}

func importFile(ctx context.Context, svc *service.Service, path, account, wallet string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read statement file: %w", err)
	}

	summary, err := svc.ImportCSV(ctx, raw, account, wallet)
	if err != nil {
		return err
	}

	fmt.Printf("%s: format=%s parsed=%d skipped=%d inserted=%d duplicates=%d\n",
		path, summary.Format, summary.RowsParsed, summary.RowsSkipped,
		summary.Inserted, summary.Skipped)
	return nil
}

func writeReport(ctx context.Context, deps *Dependencies, opts runOptions) error {
	txs, err := deps.TransactionStore.ListByMonth(ctx, opts.report)
	if err != nil {
		return err
	}

	summary := insights.Summarize(opts.report, txs, opts.monthlyInc, opts.fixedCosts, opts.savings)

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := insights.WriteExcel(f, summary); err != nil {
		return err
	}

	fmt.Printf("%s: spent %s of %s spendable, %s remaining -> %s\n",
		opts.report, money.Yen(summary.Spent).Display(),
		money.Yen(summary.Spendable).Display(),
		money.Yen(summary.Remaining).Display(), opts.out)
	return nil
}

func addEntry(ctx context.Context, svc *service.Service, opts runOptions, account, wallet string) error {
	outcome, err := svc.AddEntry(ctx, service.ManualEntry{
		Date:        opts.date,
		Amount:      opts.amount,
		Description: opts.desc,
		Category:    opts.category,
		Account:     account,
		Wallet:      wallet,
		Income:      opts.income,
	})
	if err != nil {
		return err
	}

	if !outcome.Inserted {
		fmt.Printf("already recorded: %s %s %s (%s)\n",
			outcome.Existing.Date, money.Yen(outcome.Existing.Amount).Display(),
			outcome.Existing.Description, outcome.Existing.Category)
		return nil
	}
	fmt.Printf("recorded: %s %s %s (%s)\n",
		outcome.Existing.Date, money.Yen(outcome.Existing.Amount).Display(),
		outcome.Existing.Description, outcome.Existing.Category)
	return nil
}
