// Command ironctl drives the IronHub API from a terminal: schedule grid,
// next sessions, enrollments, waitlists and QR check-ins.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ironhub")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "ironctl",
		Short:         "IronHub class scheduling from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("url", "http://localhost:8080", "API base URL (IRONHUB_URL)")
	flags.String("email", "", "staff email (IRONHUB_EMAIL)")
	flags.String("password", "", "staff password (IRONHUB_PASSWORD)")
	flags.Int("gym", 0, "gym id for platform admins (IRONHUB_GYM)")
	_ = v.BindPFlags(flags)

	app := &app{config: v}
	root.AddCommand(
		app.gridCmd(),
		app.nextCmd(),
		app.enrollCmd(),
		app.unenrollCmd(),
		app.rosterCmd(),
		app.waitlistCmd(),
		app.checkinCmd(),
	)
	return root
}

// app logs in lazily so every subcommand shares one session.
type app struct {
	config *viper.Viper
	client *client.Client
}

func (a *app) session(ctx context.Context) (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	email, password := a.config.GetString("email"), a.config.GetString("password")
	if email == "" || password == "" {
		return nil, errors.New("set --email and --password (or IRONHUB_EMAIL and IRONHUB_PASSWORD)")
	}

	var opts []client.Option
	if gym := a.config.GetInt("gym"); gym > 0 {
		opts = append(opts, client.WithGymID(gym))
	}

	c, err := client.New(a.config.GetString("url"), opts...)
	if err != nil {
		return nil, err
	}
	if _, err := c.Login(ctx, email, password); err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// userMessage renders errors the way the apps show them.
func userMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrConnection):
		return "Error de conexión"
	case errors.Is(err, context.Canceled):
		return "Cancelado"
	default:
		return err.Error()
	}
}
