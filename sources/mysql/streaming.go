package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/artie-labs/reader/config"
	"github.com/artie-labs/reader/lib/mtr"
	"github.com/artie-labs/reader/sources/mysql/streaming"
	"github.com/artie-labs/reader/writers"
)

type Streaming struct {
	dispatcher        *streaming.Dispatcher
	recordIterator    *streaming.RecordIterator
	includedTablesMap map[string]bool
}

func (s Streaming) shouldProcessTable(name string) bool {
	return s.includedTablesMap[name]
}

func buildStreamingConfig(db *sql.DB, cfg config.MySQL, settings Settings, statsD *mtr.Client) (Streaming, error) {
	slog.Info("Building mysql streaming connector", slog.Bool("gtidEnabled", settings.GTIDEnabled))

	includedTablesMap := make(map[string]bool, len(cfg.Tables))
	for _, table := range cfg.Tables {
		includedTablesMap[table.Name] = true
	}

	dispatcher, recordIterator, err := streaming.Build(db, cfg, includedTablesMap, statsD)
	if err != nil {
		return Streaming{}, fmt.Errorf("failed to build streaming components: %w", err)
	}

	return Streaming{
		dispatcher:        dispatcher,
		recordIterator:    recordIterator,
		includedTablesMap: includedTablesMap,
	}, nil
}

func (s Streaming) Close() error {
	s.dispatcher.Stop()
	return nil
}

// Run starts the dispatcher in the background and drives writer.Write off the record
// iterator in the foreground. Once the writer stops pulling (context cancellation, or the
// iterator reporting end of stream) the dispatcher is stopped and its result folded in.
func (s Streaming) Run(ctx context.Context, writer writers.Writer) error {
	dispatchErrCh := make(chan error, 1)
	go func() {
		dispatchErrCh <- s.dispatcher.Run(ctx)
	}()

	_, writeErr := writer.Write(ctx, s.recordIterator)

	s.dispatcher.Stop()
	dispatchErr := <-dispatchErrCh

	if writeErr != nil {
		return fmt.Errorf("failed to write streamed records: %w", writeErr)
	}

	if dispatchErr != nil {
		return fmt.Errorf("binlog dispatcher failed: %w", dispatchErr)
	}

	return nil
}
