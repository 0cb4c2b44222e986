package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rstore/internal/config"
	"github.com/vango-dev/rstore/internal/errors"
	"github.com/vango-dev/rstore/pkg/catalog"
	"github.com/vango-dev/rstore/pkg/remote"
	"github.com/vango-dev/rstore/pkg/store"
)

func countriesCmd(flags *globalFlags) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Drive the country store against a resource URL",
		Long: `Run one country store operation and print the resulting status.

The resource URL comes from --url, then resources.country in the
config file, then http://country.local/api/Country.

Examples:
  rstore countries list --name per
  rstore countries create --name Peru --code PE
  rstore countries update --id 42 --name Peru
  rstore countries delete 42`,
	}
	cmd.PersistentFlags().StringVarP(&baseURL, "url", "u", "", "Country resource URL")

	open := func() (*catalog.CountryStore, error) {
		cfg, logger, err := flags.load()
		if err != nil {
			return nil, err
		}
		return openCountries(cfg, logger, baseURL)
	}

	var name string
	list := &cobra.Command{
		Use:   "list",
		Short: "Load countries, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			countries, err := open()
			if err != nil {
				return err
			}
			status := countries.Search(cmd.Context(), name)
			if err := report("list", status); err != nil {
				return err
			}
			for _, c := range countries.Items() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-36s  %-4s  %s\n", c.ID, c.Code, c.Name)
			}
			info("%d countries", countries.Count())
			return nil
		},
	}
	list.Flags().StringVarP(&name, "name", "n", "", "Name filter")

	var model catalog.Country
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a country (expects 201)",
		RunE: func(cmd *cobra.Command, args []string) error {
			countries, err := open()
			if err != nil {
				return err
			}
			return report("create", countries.Create(cmd.Context(), model))
		},
	}
	modelFlags(create, &model)

	update := &cobra.Command{
		Use:   "update",
		Short: "Replace a country (expects 200)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if model.ID == "" {
				return errors.Newf(errors.CategoryCLI, "--id is required")
			}
			countries, err := open()
			if err != nil {
				return err
			}
			return report("update", countries.Update(cmd.Context(), model))
		},
	}
	modelFlags(update, &model)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a country (expects 204)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			countries, err := open()
			if err != nil {
				return err
			}
			return report("delete", countries.Delete(cmd.Context(), args[0]))
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func modelFlags(cmd *cobra.Command, model *catalog.Country) {
	cmd.Flags().StringVar(&model.ID, "id", "", "Country ID")
	cmd.Flags().StringVarP(&model.Name, "name", "n", "", "Country name")
	cmd.Flags().StringVar(&model.Code, "code", "", "Country code")
}

func openCountries(cfg *config.Config, logger *slog.Logger, override string) (*catalog.CountryStore, error) {
	baseURL := override
	if baseURL == "" {
		u, err := cfg.ResourceURL("country")
		if err != nil {
			return nil, err
		}
		baseURL = u
	}

	client := remote.New(baseURL, remote.WithLogger(logger))
	countries := catalog.NewCountryStore(client)
	countries.WithLogger(logger)
	return countries, nil
}

// report prints the operation status and turns Error into a CLI error.
func report(op string, status store.Status) error {
	if status == store.Error {
		return errors.New("R131").
			WithDetail(fmt.Sprintf("%s finished with status %s", op, status)).
			WithSuggestion("Re-run with --log-level=debug for the request log")
	}
	success("%s: %s", op, status)
	return nil
}
