package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jfk9w-go/flu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"imagesgallery/app"
	"imagesgallery/server"
)

var GitCommit = "dev"

func main() {
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}

func rootCommand() *cobra.Command {
	var configPaths []string
	root := &cobra.Command{
		Use:           "imagesgallery",
		Short:         "Item image gallery renderer",
		Version:       GitCommit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringArrayVarP(&configPaths, "config", "c", nil, "config file, may be repeated")

	createInstance := func() (*app.Instance, error) {
		inputs := make([]flu.Input, len(configPaths))
		for i, path := range configPaths {
			inputs[i] = flu.File(path)
		}

		config, err := app.ReadConfig(app.EnvironPrefix, inputs...)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}

		if err := config.ConfigureLogging(); err != nil {
			return nil, errors.Wrap(err, "configure logging")
		}

		return app.Create(config), nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve item galleries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := createInstance()
			if err != nil {
				return err
			}

			defer flu.CloseQuietly(instance)
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			handler, err := instance.GetHandler(ctx)
			if err != nil {
				return errors.Wrap(err, "get handler")
			}

			mux := server.NewMux(handler, instance.GetMetrics().Handler())
			logrus.WithField("commit", GitCommit).Infof("starting")
			return server.ListenAndServe(ctx, instance.Config.Server.Address, mux)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "render ITEM_ID",
		Short: "Print the gallery fragment of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "parse item id %s", args[0])
			}

			instance, err := createInstance()
			if err != nil {
				return err
			}

			defer flu.CloseQuietly(instance)
			ctx := cmd.Context()
			storage, err := instance.GetStorage(ctx)
			if err != nil {
				return errors.Wrap(err, "get storage")
			}

			records, err := storage.ItemRecords(ctx, itemID)
			if err != nil {
				return errors.Wrapf(err, "get item %d records", itemID)
			}

			renderer, err := instance.GetRenderer(ctx)
			if err != nil {
				return errors.Wrap(err, "get renderer")
			}

			fragment, err := renderer.Render(ctx, records, instance.Config.Gallery.Options(), nil)
			if err != nil {
				return errors.Wrapf(err, "render item %d", itemID)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), fragment)
			return err
		},
	})

	return root
}
