package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/MKhiriev/go-item-custody/internal/adapter"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/models"
)

// Usage lists the commands understood by [App.Run].
const Usage = `usage: item-custody-client [-s server] [-t token] [-timeout 15s] <command> [args]

commands:
  version                      print build information
  banner                       show the server banner
  register <login> <password>  create an account
  login <login> <password>     print a bearer token
  items                        list your items
  create <name>                create an item
  delete <id>                  delete one of your items
  send <id> <recipient>        offer an item and print the confirmation URL
  claim <confirmation-url>     accept an item offered to you
  tui                          start the interactive client
`

type App struct {
	api       adapter.ServerAdapter
	ui        UI
	buildInfo models.AppBuildInfo
	out       io.Writer
	logger    *logger.Logger
}

func NewApp(api adapter.ServerAdapter, ui UI, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) *App {
	return &App{
		api:       api,
		ui:        ui,
		buildInfo: buildInfo,
		out:       out,
		logger:    logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	command, args := args[0], args[1:]
	a.logger.Debug().Str("command", command).Int("args", len(args)).Msg("running client command")

	switch {
	case command == "version" && len(args) == 0:
		fmt.Fprint(a.out, a.buildInfo)
		return nil

	case command == "tui" && len(args) == 0:
		return a.ui.Run(ctx)

	case command == "banner" && len(args) == 0:
		banner, err := a.api.Banner(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s (%s)\n", banner.Message, banner.Version)
		return nil

	case command == "register" && len(args) == 2:
		if err := a.api.Register(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "registered", args[0])
		return nil

	case command == "login" && len(args) == 2:
		token, err := a.api.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, token)
		return nil

	case command == "items" && len(args) == 0:
		return a.listItems(ctx)

	case command == "create" && len(args) == 1:
		item, err := a.api.CreateItem(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "created item %d %q\n", item.ID, item.Name)
		return nil

	case command == "delete" && len(args) == 1:
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		deleted, err := a.api.DeleteItem(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Fprintln(a.out, "nothing to delete")
			return nil
		}
		fmt.Fprintln(a.out, "deleted item", id)
		return nil

	case command == "send" && len(args) == 2:
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		confirmationURL, err := a.api.SendItem(ctx, id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, confirmationURL)
		return nil

	case command == "claim" && len(args) == 1:
		if err := a.api.Claim(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "item received")
		return nil
	}

	return ErrUsage
}

func (a *App) listItems(ctx context.Context) error {
	items, err := a.api.ListItems(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\n", item.ID, item.Name)
	}
	return tw.Flush()
}

func parseItemID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: item id must be a number", ErrUsage)
	}
	return id, nil
}
