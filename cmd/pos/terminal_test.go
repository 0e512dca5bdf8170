package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/bytechef-api/internal/checkout"
	"github.com/sangkips/bytechef-api/internal/testutil/apitest"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/sangkips/bytechef-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestTerminal(t *testing.T) (*terminal, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(apitest.New(t).Router)
	t.Cleanup(srv.Close)

	client := posclient.New(srv.URL, 5*time.Second)
	t.Cleanup(func() { _ = client.Close() })

	out := &bytes.Buffer{}
	return newTerminal(client, checkout.NewRegister(client, zaptest.NewLogger(t)), out), out
}

func TestTerminalCheckoutSession(t *testing.T) {
	term, out := newTestTerminal(t)
	spool := filepath.Join(t.TempDir(), "receipts.bin")
	p, err := printer.New(printer.Config{Type: "file", Path: spool})
	require.NoError(t, err)
	term.printer = p

	session := strings.Join([]string{
		"produtos marmitex",
		"add 1",
		"add 1",
		"pagar dinheiro 10",
		"usar pix",
		"confirmar",
		"recibo",
		"resumo",
		"enviar",
		"sair",
		"carrinho",
	}, "\n")
	require.NoError(t, term.run(context.Background(), strings.NewReader(session)))

	got := out.String()
	assert.Contains(t, got, "Marmitex Grande")
	assert.Contains(t, got, "Pago: R$ 30,00  Restante: R$ 10,00")
	assert.Contains(t, got, "Venda #1 finalizada: R$ 30,00")
	assert.Contains(t, got, "10/05/2024: 1 vendas (0 abertas), total R$ 30,00")
	assert.Contains(t, got, "Total diário enviado para o mensal.")
	// Commands after sair are not run
	assert.NotContains(t, got, "Carrinho vazio.")

	receipts, err := os.ReadFile(spool)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(receipts), "Venda:"))
	assert.Contains(t, string(receipts), "2x Marmitex Grande")
}

func TestTerminalReportsErrors(t *testing.T) {
	term, out := newTestTerminal(t)
	ctx := context.Background()

	term.exec(ctx, "add 1")
	term.exec(ctx, "confirmar")
	term.exec(ctx, "pagar cheque 10")
	term.exec(ctx, "limpar")
	term.exec(ctx, "voar")
	term.exec(ctx, "recibo")

	got := out.String()
	assert.Contains(t, got, "Erro: item inválido: 1")
	assert.Contains(t, got, "Erro: carrinho vazio")
	assert.Contains(t, got, "Erro: forma de pagamento inválida: cheque")
	assert.Contains(t, got, "Use 'limpar sim' para confirmar.")
	assert.Contains(t, got, "Comando desconhecido: voar")
	assert.Contains(t, got, "Erro: nenhum recibo nesta sessão")
}

func TestTerminalClearsPayments(t *testing.T) {
	term, out := newTestTerminal(t)
	ctx := context.Background()

	term.exec(ctx, "produtos marmitex")
	term.exec(ctx, "add 1")
	term.exec(ctx, "pagar dinheiro 20")
	term.exec(ctx, "zerar")
	term.exec(ctx, "confirmar")

	got := out.String()
	assert.Contains(t, got, "Pago: R$ 20,00  Restante: R$ 0,00")
	assert.Contains(t, got, "Pago: R$ 0,00  Restante: R$ 20,00")
	assert.Contains(t, got, "Erro: nenhum pagamento informado")
	assert.False(t, term.register.Split().CanConfirm())
}

func TestTerminalRollupKeyKeptUntilSuccess(t *testing.T) {
	down := httptest.NewServer(apitest.New(t).Router)
	down.Close()
	client := posclient.New(down.URL, time.Second)
	t.Cleanup(func() { _ = client.Close() })

	out := &bytes.Buffer{}
	term := newTerminal(client, checkout.NewRegister(client, zaptest.NewLogger(t)), out)
	ctx := context.Background()

	term.exec(ctx, "enviar")
	key := term.rollupKey
	require.NotEmpty(t, key)
	term.exec(ctx, "enviar")
	assert.Equal(t, key, term.rollupKey)
	assert.Equal(t, 2, strings.Count(out.String(), "Erro:"))

	live, _ := newTestTerminal(t)
	live.exec(ctx, "enviar")
	assert.Empty(t, live.rollupKey)
}
