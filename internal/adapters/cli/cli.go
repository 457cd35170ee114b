package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aluiggi96/Doc-MYPE/internal/adapters/repl"
	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

var version = "1.0.0"

// cli carries the service and the terminal streams shared by every command.
type cli struct {
	svc    app.ApplicationService
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree over svc. Commands read confirmations
// from in and print results as indented JSON to out.
func NewRootCommand(svc app.ApplicationService, in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{svc: svc, in: bufio.NewReader(in), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "mype",
		Short: "Invoicing, clients, products and reports for small businesses",
		Long: `mype manages electronic documents (facturas, boletas, notas de crédito y
débito, guías de remisión), clients, products and sustainability data, and
prints the dashboard, accounting and cash flow reports.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		c.documentsCommand(),
		c.clientsCommand(),
		c.productsCommand(),
		c.sustainabilityCommand(),
		c.reportCommand("dashboard", "Show headline figures and recent documents", func(ctx context.Context) (any, error) {
			return svc.GetDashboard(ctx)
		}),
		c.reportCommand("accounting", "Show sales totals, income statement and balance sheet", func(ctx context.Context) (any, error) {
			return svc.GetAccounting(ctx)
		}),
		c.reportCommand("cashflow", "Show monthly inflow and outflow", func(ctx context.Context) (any, error) {
			return svc.GetCashFlow(ctx)
		}),
		c.reportCommand("insights", "Ask the AI service for a summary of sales", func(ctx context.Context) (any, error) {
			return svc.RequestInsights(ctx)
		}),
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				repl.Run(cmd.Context(), svc, c.in, c.out)
				return nil
			},
		},
	)
	return root
}

// Execute runs the command tree against os.Args and returns the process exit code.
func Execute(ctx context.Context, svc app.ApplicationService) int {
	log := logger.WithComponent("cmd")

	root := NewRootCommand(svc, os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Debug().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// ── Documents ─────────────────────────────────────────────────────────────────

func (c *cli) documentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs", "d"},
		Short:   "List, create, edit and void documents",
	}

	list := &cobra.Command{
		Use:   "list <type>",
		Short: "List documents of one type (invoices, receipts, credit_notes, debit_notes, dispatch_guides)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseKind(args[0])
			if err != nil {
				return err
			}
			result, err := c.svc.ListDocuments(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return c.print(result)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.svc.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(result.Document)
		},
	}

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a document from a JSON file (or stdin with --file -)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in core.DocumentInput
			if err := c.readJSON(file, &in); err != nil {
				return err
			}
			result, err := c.svc.CreateDocument(cmd.Context(), app.DocumentRequest{DocumentInput: in})
			if err != nil {
				return err
			}
			return c.print(result.Document)
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "-", "JSON document input")

	var editFile string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a draft document from a JSON file (or stdin with --file -)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in core.DocumentInput
			if err := c.readJSON(editFile, &in); err != nil {
				return err
			}
			result, err := c.svc.EditDocument(cmd.Context(), args[0], app.DocumentRequest{DocumentInput: in})
			if err != nil {
				return err
			}
			return c.print(result.Document)
		},
	}
	edit.Flags().StringVarP(&editFile, "file", "f", "-", "JSON document input")

	var yes bool
	void := &cobra.Command{
		Use:   "void <id>",
		Short: "Void a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.svc.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			h := doc.Document.Base()
			ok, err := c.confirm(yes, fmt.Sprintf("Void %s %s for %s?", h.Type.Label(), h.Number, h.ClientName))
			if err != nil || !ok {
				return err
			}
			result, err := c.svc.VoidDocument(cmd.Context(), app.VoidDocumentRequest{ID: args[0], Confirmed: true})
			if err != nil {
				return err
			}
			if !result.Changed {
				fmt.Fprintf(c.out, "%s was already voided.\n", h.Number)
				return nil
			}
			fmt.Fprintf(c.out, "%s voided.\n", h.Number)
			return nil
		},
	}
	void.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(list, show, create, edit, void)
	return cmd
}

// ── Clients ───────────────────────────────────────────────────────────────────

func (c *cli) clientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"c"},
		Short:   "Manage clients",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.svc.ListClients(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(result.Clients)
		},
	}

	var in core.ClientInput
	var docType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.DocType = core.DocType(docType)
			result, err := c.svc.CreateClient(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(result.Client)
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "Display name")
	add.Flags().StringVar(&docType, "doc-type", string(core.DocTypeRUC), "RUC or DNI")
	add.Flags().StringVar(&in.DocNumber, "doc-number", "", "RUC (11 digits) or DNI (8 digits)")
	add.Flags().StringVar(&in.Address, "address", "", "Address")
	add.Flags().StringVar(&in.Email, "email", "", "Email")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client that no document references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.svc.GetClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ok, err := c.confirm(yes, fmt.Sprintf("Delete client %s (%s %s)?", client.Client.Name, client.Client.DocType, client.Client.DocNumber))
			if err != nil || !ok {
				return err
			}
			if err := c.svc.DeleteClient(cmd.Context(), app.DeleteRequest{ID: args[0], Confirmed: true}); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Client deleted.")
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(list, add, del)
	return cmd
}

// ── Products ──────────────────────────────────────────────────────────────────

func (c *cli) productsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "Manage products",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.svc.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(result)
		},
	}

	lowStock := &cobra.Command{
		Use:   "low-stock",
		Short: "List products below the stock threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.svc.GetLowStock(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(result)
		},
	}

	var in core.ProductInput
	var price string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid --price %q: %w", price, err)
			}
			in.UnitPrice = p
			result, err := c.svc.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(result)
		},
	}
	add.Flags().StringVar(&in.Code, "code", "", "Product code")
	add.Flags().StringVar(&in.Name, "name", "", "Product name")
	add.Flags().StringVar(&price, "price", "0", "Unit price")
	add.Flags().StringVar(&in.UnitOfMeasure, "unit", core.DefaultUnitOfMeasure, "Unit of measure")
	add.Flags().IntVar(&in.Stock, "stock", 0, "Units in stock")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product that no document references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := c.svc.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ok, err := c.confirm(yes, fmt.Sprintf("Delete product %s %s?", product.Product.Code, product.Product.Name))
			if err != nil || !ok {
				return err
			}
			if err := c.svc.DeleteProduct(cmd.Context(), app.DeleteRequest{ID: args[0], Confirmed: true}); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Product deleted.")
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(list, lowStock, add, del)
	return cmd
}

// ── Sustainability ────────────────────────────────────────────────────────────

func (c *cli) sustainabilityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sustainability",
		Aliases: []string{"s"},
		Short:   "Record and report monthly resource usage",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List months and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.svc.GetSustainability(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(result)
		},
	}

	var month, energy, paper, waste string
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a month, replacing any previous values for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := core.SustainabilityInput{Month: month}
			for _, f := range []struct {
				name  string
				value string
				dst   *decimal.Decimal
			}{
				{"energy", energy, &in.EnergyConsumption},
				{"paper", paper, &in.PaperUsage},
				{"waste", waste, &in.WasteGenerated},
			} {
				d, err := decimal.NewFromString(f.value)
				if err != nil {
					return fmt.Errorf("invalid --%s %q: %w", f.name, f.value, err)
				}
				*f.dst = d
			}
			result, err := c.svc.RecordSustainability(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(result.Entry)
		},
	}
	record.Flags().StringVar(&month, "month", "", "Month as YYYY-MM")
	record.Flags().StringVar(&energy, "energy", "0", "Energy consumption in kWh")
	record.Flags().StringVar(&paper, "paper", "0", "Paper usage in reams")
	record.Flags().StringVar(&waste, "waste", "0", "Waste generated in kg")
	_ = record.MarkFlagRequired("month")

	cmd.AddCommand(list, record)
	return cmd
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (c *cli) reportCommand(use, short string, fetch func(context.Context) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fetch(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(result)
		},
	}
}

// confirm asks a yes/no question unless skip is set. Anything but y/yes declines.
func (c *cli) confirm(skip bool, question string) (bool, error) {
	if skip {
		return true, nil
	}
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	fmt.Fprintln(c.out, "Canceled.")
	return false, nil
}

func (c *cli) readJSON(path string, v any) error {
	var r io.Reader = c.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}
	return nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
