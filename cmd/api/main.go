package main

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/source"
	"github.com/vfg2006/sales-insights-dashboard/internal/api"
	"github.com/vfg2006/sales-insights-dashboard/internal/config"
	"github.com/vfg2006/sales-insights-dashboard/internal/scheduler"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/insighting"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/loading"
	"github.com/vfg2006/sales-insights-dashboard/pkg/log"
	"github.com/vfg2006/sales-insights-dashboard/pkg/metrics"
)

// tableSource é uma fonte tabular que também sabe identificar seu conteúdo
type tableSource interface {
	loading.TableReader
	dashboarding.Fingerprinter
	Name() string
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader, closer := newSource(ctx, cfg)
	if closer != nil {
		defer closer.Close()
	}

	window, err := insighting.ParseWindowPolicy(cfg.Dashboard.PriorWindow)
	if err != nil {
		logrus.Fatal(err)
	}

	options := insighting.DefaultOptions()
	options.Window = window
	if cfg.Dashboard.CurrencySymbol != "" {
		options.CurrencySymbol = cfg.Dashboard.CurrencySymbol
	}

	appMetrics := metrics.New()

	dashboardService := dashboarding.NewService(loading.NewService(reader), options, reader.Name()).
		WithMetrics(appMetrics)
	if cfg.Dashboard.CacheEnabled {
		dashboardService = dashboardService.WithCache(reader)
		logrus.Info("Cache do dashboard habilitado")
	}

	refreshService := scheduler.NewDashboardRefreshService(dashboardService, cfg)
	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do dashboard")
	} else {
		logrus.Info("Agendador de atualização do dashboard iniciado com sucesso")
	}

	server, err := api.New(cfg, dashboardService, appMetrics, refreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newSource cria o leitor da fonte configurada. Para Postgres também
// retorna a conexão, que deve ser fechada no encerramento.
func newSource(ctx context.Context, cfg *config.Config) (tableSource, io.Closer) {
	switch cfg.Source.Kind {
	case config.SourceXLSX:
		return source.NewXLSXReader(cfg.Source.Path, cfg.Source.Sheet), nil
	case config.SourcePostgres:
		conn := pgconn(ctx, cfg.Database)

		repo, err := repository.NewSalesRecordRepository(conn, cfg.Source.Table)
		if err != nil {
			conn.Close()
			logrus.WithError(err).Fatal("Tabela de vendas inválida")
		}

		return source.NewPostgresReader(repo, cfg.Source.Table), conn
	default:
		return source.NewCSVReader(cfg.Source.Path), nil
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
