package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/checkout"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/sangkips/bytechef-api/pkg/printer"
	"github.com/sangkips/bytechef-api/pkg/report"
	"github.com/shopspring/decimal"
)

const helpText = `Comandos:
  produtos [busca]          lista o catálogo
  add <n>                   adiciona o produto n da última lista
  rm <n>                    remove uma unidade do item n do carrinho
  carrinho                  mostra carrinho e pagamentos
  pagar <forma> <valor>     define o valor de uma forma (dinheiro, pix, debito, credito)
  usar <forma>              coloca o restante em uma forma
  zerar                     zera os pagamentos
  confirmar                 abre e fecha a venda e imprime o recibo
  recibo                    reimprime o último recibo
  diaria                    vendas de hoje
  resumo                    resumo do dia
  enviar                    envia o total do dia para o mensal
  limpar sim                apaga as vendas de hoje
  mensal [AAAA-MM]          resumo mensal
  exportar [AAAA-MM]        salva a planilha do mês
  sair`

type terminal struct {
	api      *posclient.Client
	register *checkout.Register
	out      io.Writer
	listed   []posclient.Product

	printer      printer.Printer
	storeName    string
	receiptWidth int
	lastReceipt  []byte
	// rollupKey is reused until a send to the monthly ledger succeeds
	rollupKey string
}

func newTerminal(api *posclient.Client, register *checkout.Register, out io.Writer) *terminal {
	return &terminal{
		api:       api,
		register:  register,
		out:       out,
		printer:   printer.Null{},
		storeName: "ByteChef",
	}
}

func (t *terminal) println(a ...interface{}) {
	fmt.Fprintln(t.out, a...)
}

func (t *terminal) printf(format string, a ...interface{}) {
	fmt.Fprintf(t.out, format, a...)
}

// exec runs one command line and reports whether the session should end
func (t *terminal) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "ajuda", "help":
		t.println(helpText)
	case "produtos":
		err = t.products(ctx, strings.Join(args, " "))
	case "add":
		err = t.add(args)
	case "rm":
		err = t.remove(args)
	case "carrinho":
		t.showCart()
	case "pagar":
		err = t.pay(args)
	case "usar":
		err = t.use(args)
	case "zerar":
		t.register.ClearPayments()
		t.showCart()
	case "confirmar":
		err = t.confirm(ctx)
	case "recibo":
		err = t.reprint()
	case "diaria":
		err = t.daily(ctx)
	case "resumo":
		err = t.summary(ctx)
	case "enviar":
		err = t.sendToMonthly(ctx)
	case "limpar":
		err = t.purge(ctx, args)
	case "mensal":
		err = t.monthly(ctx, args)
	case "exportar":
		err = t.export(ctx, args)
	case "sair", "exit":
		return true
	default:
		t.printf("Comando desconhecido: %s\n", cmd)
	}

	if err != nil {
		t.printf("Erro: %v\n", err)
	}
	return false
}

func (t *terminal) products(ctx context.Context, search string) error {
	products, err := t.api.Products(ctx, search)
	if err != nil {
		return err
	}
	t.listed = products
	if len(products) == 0 {
		t.println("Nenhum produto encontrado.")
	}
	for i, p := range products {
		t.printf("%2d. %-24s %s\n", i+1, p.Name, report.FormatBRL(p.Price))
	}
	return nil
}

func index(args []string, n int) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("informe o número do item")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("item inválido: %s", args[0])
	}
	return i - 1, nil
}

func (t *terminal) add(args []string) error {
	i, err := index(args, len(t.listed))
	if err != nil {
		return err
	}
	t.register.Add(t.listed[i])
	t.showCart()
	return nil
}

func (t *terminal) remove(args []string) error {
	items := t.register.Cart().Items()
	i, err := index(args, len(items))
	if err != nil {
		return err
	}
	t.register.Remove(items[i].ProductID)
	t.showCart()
	return nil
}

func (t *terminal) showCart() {
	cart := t.register.Cart()
	if cart.IsEmpty() {
		t.println("Carrinho vazio.")
		return
	}
	for i, l := range cart.Items() {
		t.printf("%2d. %-24s %3dx %s = %s\n", i+1, l.Name, l.Quantity, report.FormatBRL(l.Price), report.FormatBRL(l.Total()))
	}
	split := t.register.Split()
	t.printf("Total: %s\n", report.FormatBRL(cart.Total()))
	for _, m := range enum.PaymentMethods {
		t.printf("  %-9s %s\n", m.Label()+":", report.FormatBRL(split.Amount(m)))
	}
	t.printf("Pago: %s  Restante: %s\n", report.FormatBRL(split.Paid()), report.FormatBRL(split.Remaining(cart.Total())))
}

func (t *terminal) pay(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("uso: pagar <forma> <valor>")
	}
	method, err := enum.ParsePaymentMethod(args[0])
	if err != nil {
		return fmt.Errorf("forma de pagamento inválida: %s", args[0])
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(args[1], ",", "."))
	if err != nil {
		return fmt.Errorf("valor inválido: %s", args[1])
	}
	t.register.SetPayment(method, amount)
	t.showCart()
	return nil
}

func (t *terminal) use(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("uso: usar <forma>")
	}
	method, err := enum.ParsePaymentMethod(args[0])
	if err != nil {
		return fmt.Errorf("forma de pagamento inválida: %s", args[0])
	}
	t.register.SelectPayment(method)
	t.showCart()
	return nil
}

func (t *terminal) confirm(ctx context.Context) error {
	cart := t.register.Cart()
	sale, err := t.register.Confirm(ctx)
	if err != nil {
		if pending := t.register.Pending(); pending != nil {
			t.printf("Venda #%d aberta. Use 'confirmar' para tentar fechar de novo.\n", pending.SaleNumber)
		}
		return err
	}
	t.printf("Venda #%d finalizada: %s\n", sale.SaleNumber, report.FormatBRL(sale.Total))

	t.lastReceipt = checkout.Receipt(t.storeName, sale, cart, t.receiptWidth)
	if err := t.printer.Print(t.lastReceipt); err != nil {
		return fmt.Errorf("venda registrada, mas o recibo não foi impresso: %w", err)
	}
	return nil
}

func (t *terminal) reprint() error {
	if t.lastReceipt == nil {
		return fmt.Errorf("nenhum recibo nesta sessão")
	}
	return t.printer.Print(t.lastReceipt)
}

func (t *terminal) daily(ctx context.Context) error {
	sales, err := t.api.DailySales(ctx)
	if err != nil {
		return err
	}
	if len(sales) == 0 {
		t.println("Nenhuma venda hoje.")
	}
	for _, s := range sales {
		t.printf("#%-3d %s %-6s %s\n", s.SaleNumber, s.Date.Format("15:04"), s.Status, report.FormatBRL(s.Total))
		for _, item := range s.Items {
			name := item.ProductID.String()
			if item.Product != nil {
				name = item.Product.Name
			}
			t.printf("      %dx %s\n", item.Quantity, name)
		}
	}
	return nil
}

func (t *terminal) summary(ctx context.Context) error {
	rep, err := t.api.DailyReport(ctx)
	if err != nil {
		return err
	}
	t.printf("%s: %d vendas (%d abertas), total %s\n", report.FormatDate(rep.Date), rep.SalesCount, rep.OpenCount, rep.FormattedTotal)
	for _, m := range rep.ByMethod {
		t.printf("  %-9s %s\n", m.Label+":", m.Formatted)
	}
	return nil
}

func (t *terminal) sendToMonthly(ctx context.Context) error {
	if t.rollupKey == "" {
		t.rollupKey = uuid.NewString()
	}
	rollup, err := t.api.SendToMonthly(ctx, t.rollupKey)
	if err != nil {
		return err
	}
	t.rollupKey = ""
	t.println(rollup.Message)
	if rollup.TotalAmount != nil {
		t.printf("Enviado: %s\n", report.FormatBRL(*rollup.TotalAmount))
	}
	return nil
}

func (t *terminal) purge(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] != "sim" {
		t.println("Isto apaga todas as vendas de hoje. Use 'limpar sim' para confirmar.")
		return nil
	}
	msg, err := t.api.PurgeDaily(ctx)
	if err != nil {
		return err
	}
	t.println(msg)
	return nil
}

func monthArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func (t *terminal) monthly(ctx context.Context, args []string) error {
	rep, err := t.api.MonthlyReport(ctx, monthArg(args))
	if err != nil {
		return err
	}
	t.printf("Mês %s\n", rep.Month)
	for _, d := range rep.Days {
		t.printf("  %s  %s\n", report.FormatDate(d.Date), d.Formatted)
	}
	t.printf("Total: %s\n", rep.FormattedTotal)
	return nil
}

func (t *terminal) export(ctx context.Context, args []string) error {
	data, name, err := t.api.ExportMonthly(ctx, monthArg(args))
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	t.printf("Planilha salva em %s\n", name)
	return nil
}
