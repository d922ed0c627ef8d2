// Importer carrega um CSV de vendas na tabela usada pela fonte Postgres.
//
//	go run ./cmd/importer -file data.csv -create-table
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/source"
	"github.com/vfg2006/sales-insights-dashboard/internal/config"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/loading"
	"github.com/vfg2006/sales-insights-dashboard/pkg/log"
)

func main() {
	file := flag.String("file", "data.csv", "arquivo CSV com as colunas date, channel, revenue, ads_spend")
	table := flag.String("table", "", "tabela de destino (padrão: SOURCE_TABLE)")
	createTable := flag.Bool("create-table", false, "cria a tabela caso não exista")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	if *table == "" {
		*table = cfg.Source.Table
	}

	logrus.WithFields(logrus.Fields{
		"file":  *file,
		"table": *table,
	}).Info("Iniciando importação de vendas...")
	startTime := time.Now()

	ctx := context.Background()

	records, err := loading.NewService(source.NewCSVReader(*file)).Load(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao ler o arquivo de vendas")
	}
	logrus.Infof("%d vendas lidas de %s", len(records), *file)

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()

	repo, err := repository.NewSalesRecordRepository(conn, *table)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO na tabela de destino")
	}

	if *createTable {
		if err := repo.EnsureSchema(ctx); err != nil {
			logrus.WithError(err).Fatal("ERRO ao criar a tabela de vendas")
		}
	}

	inserted, err := repo.InsertRecords(ctx, records)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao inserir vendas, transação revertida")
	}

	logrus.Infof("Importação concluída em %v. Vendas inseridas: %d", time.Since(startTime), inserted)
}
