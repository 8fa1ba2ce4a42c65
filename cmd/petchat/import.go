package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"petchat/internal/app"
	"petchat/internal/config"
	"petchat/internal/repository"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		csvPath string
		source  string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load products from a CSV file into the product database",
		Long: `Creates the products table when missing and upserts every row of the CSV
file. The header row names the columns; id, name and price are required.
The database is chosen by CATALOG_PRODUCT_SOURCE (sqlite or postgres).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if source != "" {
				cfg.Catalog.ProductSource = strings.ToLower(strings.TrimSpace(source))
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("--source: %w", err)
				}
			}
			if cfg.Catalog.ProductSource == config.ProductSourceJSON {
				return errors.New("import needs a database: set CATALOG_PRODUCT_SOURCE or --source to sqlite or postgres")
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer f.Close()

			products, err := repository.ReadProductsCSV(f)
			if err != nil {
				return err
			}

			store, err := app.OpenProductStore(cfg)
			if err != nil {
				return fmt.Errorf("open product store: %w", err)
			}
			defer store.Close()

			if err := store.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			n, errs := store.UpsertProducts(cmd.Context(), products)
			for _, e := range errs {
				log.Warn("product not imported", "error", e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d products into %s\n", n, len(products), cfg.Catalog.ProductSource)
			if len(errs) > 0 {
				return fmt.Errorf("%d products failed to import", len(errs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with products (required)")
	cmd.Flags().StringVar(&source, "source", "", "override CATALOG_PRODUCT_SOURCE (sqlite or postgres)")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}
