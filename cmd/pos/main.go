// Command pos is a terminal point-of-sale client for the ByteChef API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sangkips/bytechef-api/internal/checkout"
	"github.com/sangkips/bytechef-api/internal/config"
	"github.com/sangkips/bytechef-api/pkg/logger"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/sangkips/bytechef-api/pkg/printer"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.IsProduction(), cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	client := posclient.New(cfg.Client.APIURL, cfg.Client.Timeout)
	defer func() { _ = client.Close() }()

	pc := cfg.Client.Printer
	receiptPrinter, err := printer.New(printer.Config{Type: pc.Type, Path: pc.Path, Address: pc.Address, Width: pc.Width})
	if err != nil {
		zlog.Warn("printer disabled", zap.Error(err))
		receiptPrinter = printer.Null{}
	}
	defer func() { _ = receiptPrinter.Close() }()

	zlog.Debug("pos client ready", zap.String("api", cfg.Client.APIURL), zap.String("printer", pc.Type))

	t := newTerminal(client, checkout.NewRegister(client, zlog), os.Stdout)
	t.printer = receiptPrinter
	t.storeName = cfg.Client.StoreName
	t.receiptWidth = pc.Width
	if err := t.run(context.Background(), os.Stdin); err != nil && err != io.EOF {
		zlog.Fatal("terminal stopped", zap.Error(err))
	}
}

func (t *terminal) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	t.println("ByteChef PDV. Digite 'ajuda' para ver os comandos.")
	t.prompt()
	for scanner.Scan() {
		if quit := t.exec(ctx, scanner.Text()); quit {
			return nil
		}
		t.prompt()
	}
	return scanner.Err()
}

func (t *terminal) prompt() {
	fmt.Fprint(t.out, "> ")
}
