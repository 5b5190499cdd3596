package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Codingworld786/ecommerce-fullstack/internal/catalog"
	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
	"github.com/Codingworld786/ecommerce-fullstack/internal/store"
)

// CatalogSource names where a catalog is read from. DB wins over File; the
// embedded catalog is used when both are empty.
type CatalogSource struct {
	File string
	DB   string
}

// LoadCatalog resolves src to a catalog.
func LoadCatalog(ctx context.Context, src CatalogSource) (*catalog.Catalog, error) {
	switch {
	case src.DB != "":
		st, err := store.NewStore(src.DB)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
		return st.LoadCatalog(ctx)
	case src.File != "":
		return catalog.LoadFile(src.File)
	default:
		return catalog.Default(), nil
	}
}

// NewCatalogCommand groups the catalog subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogExportCommand())
	cmd.AddCommand(newCatalogSeedCommand(rootOpts))
	return cmd
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	var src CatalogSource
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.Category(category)
			if filter != "" && !filter.Valid() {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown category %q", category))
			}
			c, err := LoadCatalog(cmd.Context(), src)
			if err != nil {
				return WrapExitError(ExitCommandError, "load catalog", err)
			}
			products := c.List(filter)

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(products, func(w io.Writer) error {
				return writeProductTable(w, products)
			})
		},
	}
	cmd.Flags().StringVar(&src.File, "from", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&src.DB, "db", "", "SQLite catalog database")
	cmd.Flags().StringVar(&category, "category", "", "only list men or women")
	return cmd
}

func writeProductTable(w io.Writer, products []models.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Image)
	}
	return tw.Flush()
}

func newCatalogExportCommand() *cobra.Command {
	var src CatalogSource

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as a YAML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := LoadCatalog(cmd.Context(), src)
			if err != nil {
				return WrapExitError(ExitCommandError, "load catalog", err)
			}
			return c.Write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&src.File, "from", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&src.DB, "db", "", "SQLite catalog database")
	return cmd
}

// SeedResult reports a seed run.
type SeedResult struct {
	DB       string `json:"db" yaml:"db"`
	Products int    `json:"products" yaml:"products"`
}

func newCatalogSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var src CatalogSource
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the products in a SQLite catalog database",
		Long: `Create or migrate the SQLite catalog database and replace its products
with the built-in catalog or the YAML file given by --from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return NewExitError(ExitCommandError, "--db is required")
			}
			ctx := cmd.Context()
			c, err := LoadCatalog(ctx, CatalogSource{File: src.File})
			if err != nil {
				return WrapExitError(ExitCommandError, "load catalog", err)
			}

			st, err := store.NewStore(dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return WrapExitError(ExitFailure, "migrate database", err)
			}
			if err := st.ReplaceProducts(ctx, c.List("")); err != nil {
				return WrapExitError(ExitFailure, "seed products", err)
			}

			res := SeedResult{DB: dbPath, Products: c.Len()}
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Seeded %d products into %s\n", res.Products, res.DB)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&src.File, "from", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite catalog database (created if missing)")
	return cmd
}
