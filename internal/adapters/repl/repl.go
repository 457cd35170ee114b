package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

var errExit = errors.New("exit")

type session struct {
	svc app.ApplicationService
	in  *bufio.Reader
	out io.Writer
}

// Run starts the interactive shell. It reads slash commands from in until
// /exit or end of input and writes tables to out.
func Run(ctx context.Context, svc app.ApplicationService, in *bufio.Reader, out io.Writer) {
	s := &session{svc: svc, in: in, out: out}
	log := logger.WithComponent("repl")

	fmt.Fprintln(out, "Doc-MYPE")
	fmt.Fprintln(out, "Manage documents, clients and products. Type /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		fmt.Fprint(out, "\n> ")
		input, err := in.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if err != nil {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			continue
		}

		if !strings.HasPrefix(input, "/") {
			fmt.Fprintln(out, "Commands start with '/'. Type /help for all commands.")
			continue
		}

		if dispErr := s.dispatch(ctx, input); dispErr != nil {
			if errors.Is(dispErr, errExit) {
				fmt.Fprintln(out, "Goodbye!")
				return
			}
			log.Debug().Err(dispErr).Str("input", input).Msg("command failed")
			fmt.Fprintf(out, "Error: %v\n", dispErr)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *session) dispatch(ctx context.Context, input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "dashboard", "d":
		result, err := s.svc.GetDashboard(ctx)
		if err != nil {
			return err
		}
		printDashboard(s.out, result)

	case "docs":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /docs <invoices|receipts|credit_notes|debit_notes|dispatch_guides>")
			return nil
		}
		kind, err := core.ParseKind(args[0])
		if err != nil {
			return err
		}
		result, err := s.svc.ListDocuments(ctx, kind)
		if err != nil {
			return err
		}
		printDocuments(s.out, result)

	case "doc":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /doc <id>")
			return nil
		}
		result, err := s.svc.GetDocument(ctx, args[0])
		if err != nil {
			return err
		}
		printDocumentDetail(s.out, result.Document)

	case "new":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: /new <type> <client-doc-number|client-id>")
			return nil
		}
		kind, err := core.ParseKind(args[0])
		if err != nil {
			return err
		}
		return s.handleNewDocument(ctx, kind, args[1])

	case "void":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /void <id>")
			return nil
		}
		if !s.confirm("Void this document? This cannot be undone.") {
			return nil
		}
		result, err := s.svc.VoidDocument(ctx, app.VoidDocumentRequest{ID: args[0], Confirmed: true})
		if err != nil {
			return err
		}
		if !result.Changed {
			fmt.Fprintf(s.out, "%s was already voided.\n", result.Document.Base().Number)
			return nil
		}
		fmt.Fprintf(s.out, "%s VOIDED.\n", result.Document.Base().Number)

	case "clients":
		result, err := s.svc.ListClients(ctx)
		if err != nil {
			return err
		}
		printClients(s.out, result)

	case "products":
		result, err := s.svc.ListProducts(ctx)
		if err != nil {
			return err
		}
		printProducts(s.out, "PRODUCTS", result)

	case "lowstock":
		result, err := s.svc.GetLowStock(ctx)
		if err != nil {
			return err
		}
		printProducts(s.out, "LOW STOCK", result)

	case "accounting":
		result, err := s.svc.GetAccounting(ctx)
		if err != nil {
			return err
		}
		printAccounting(s.out, result)

	case "cashflow":
		result, err := s.svc.GetCashFlow(ctx)
		if err != nil {
			return err
		}
		printCashFlow(s.out, result)

	case "sustainability":
		if len(args) >= 1 {
			return s.handleRecordMonth(ctx, args[0])
		}
		result, err := s.svc.GetSustainability(ctx)
		if err != nil {
			return err
		}
		printSustainability(s.out, result)

	case "insights":
		fmt.Fprintln(s.out, "[AI] Analyzing sales...")
		result, err := s.svc.RequestInsights(ctx)
		if err != nil {
			return err
		}
		printInsights(s.out, result)

	case "help", "h":
		s.printHelp()

	case "exit", "quit", "q":
		return errExit

	default:
		fmt.Fprintf(s.out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

func (s *session) confirm(question string) bool {
	switch strings.ToLower(s.ask(question+" (y/N)", "")) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	fmt.Fprintln(s.out, "Canceled.")
	return false
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `
Documents
  /dashboard                          Headline figures and recent documents
  /docs <type>                        List documents of one type (invoices, receipts, ...)
  /doc <id>                           Show one document
  /new <type> <client>                Create a document interactively
  /void <id>                          Void a document (asks for confirmation)

Registries
  /clients                            List clients
  /products                           List products
  /lowstock                           Products under the low stock threshold

Reports
  /accounting                         Estimated income statement and balance sheet
  /cashflow                           Monthly inflow and outflow
  /sustainability [YYYY-MM]           List months, or record one month interactively
  /insights                           Ask the AI service for a sales summary

  /help                               Show this help
  /exit                               Leave the shell
`)
}
