package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rstore/pkg/catalog"
	"github.com/vango-dev/rstore/pkg/remote"
)

func weatherCmd(flags *globalFlags) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "weather <city>",
		Short: "Load the weather for a city",
		Long: `Load the weather for a city with GET <url>?city=<city> and print
the returned fields.

The resource URL comes from --url or resources.weather in the config file.

Examples:
  rstore weather Lima --url http://localhost:9000/weather`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load()
			if err != nil {
				return err
			}
			if baseURL == "" {
				if baseURL, err = cfg.ResourceURL("weather"); err != nil {
					return err
				}
			}

			weather := catalog.NewWeatherStore(remote.New(baseURL, remote.WithLogger(logger)), logger)
			if err := report("weather", weather.LoadWeather(cmd.Context(), args[0])); err != nil {
				return err
			}

			data := weather.WeatherData()
			keys := make([]string, 0, len(data))
			for k := range data {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %v\n", k+":", data[k])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&baseURL, "url", "u", "", "Weather resource URL")

	return cmd
}
