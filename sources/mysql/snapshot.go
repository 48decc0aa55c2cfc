package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/artie-labs/reader/config"
	"github.com/artie-labs/reader/lib/debezium"
	"github.com/artie-labs/reader/lib/rdbms"
	"github.com/artie-labs/reader/sources/mysql/adapter"
	"github.com/artie-labs/reader/writers"
)

type Snapshot struct {
	cfg config.MySQL
	db  *sql.DB
}

func (s Snapshot) Close() error {
	return s.db.Close()
}

func (s Snapshot) Run(ctx context.Context, writer writers.Writer) error {
	for _, tableCfg := range s.cfg.Tables {
		if err := s.snapshotTable(ctx, writer, *tableCfg); err != nil {
			return err
		}
	}
	return nil
}

func (s Snapshot) snapshotTable(ctx context.Context, writer writers.Writer, tableCfg config.MySQLTable) error {
	snapshotStartTime := time.Now()

	slog.Info("Loading configuration for table", slog.String("table", tableCfg.Name))
	tblAdapter, err := adapter.NewMySQLAdapter(s.db, tableCfg)
	if err != nil {
		if rdbms.IsNoRowsErr(err) {
			slog.Info("Table does not contain any rows, skipping...", slog.String("table", tableCfg.Name))
			return nil
		}

		return fmt.Errorf("failed to load configuration for table %s: %w", tableCfg.Name, err)
	}

	dbzTransformer, err := debezium.NewDebeziumTransformer(tblAdapter)
	if err != nil {
		return fmt.Errorf("failed to build debezium transformer for table %s: %w", tableCfg.Name, err)
	}

	count, err := writer.Write(ctx, dbzTransformer)
	if err != nil {
		return fmt.Errorf("failed to snapshot for table %s: %w", tableCfg.Name, err)
	}

	slog.Info("Finished snapshotting",
		slog.String("table", tableCfg.Name),
		slog.Int("scannedTotal", count),
		slog.Duration("totalDuration", time.Since(snapshotStartTime)),
	)

	return nil
}
