package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-movie-favorites/internal/adapter"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUsage = errors.New("usage: movie-favorites-client [flags] version|register|users|me|movies|movie|genre|director|favorite|unfavorite|delete [args]")

var authCommands = map[string]bool{
	"users": true, "me": true, "movies": true, "movie": true, "genre": true,
	"director": true, "favorite": true, "unfavorite": true, "delete": true,
}

func main() {
	log := logger.NewLogger("movie-favorites-client")

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("movie-favorites-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	address := fs.String("a", "http://localhost:8080", "API base URL")
	username := fs.String("u", os.Getenv("MOVIES_USERNAME"), "username")
	password := fs.String("p", os.Getenv("MOVIES_PASSWORD"), "password")
	email := fs.String("e", "", "email used by register")
	timeout := fs.Duration("t", 15*time.Second, "request timeout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	client := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{BaseURL: *address, Timeout: *timeout})
	command, rest := fs.Arg(0), fs.Args()[1:]

	switch command {
	case "version":
		info, err := client.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Client: %s (%s, %s)\n", orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
		return printJSON(out, info)
	case "register":
		user, err := client.Register(ctx, models.RegisterRequest{Username: *username, Password: *password, Email: *email})
		if err != nil {
			return err
		}
		return printJSON(out, user)
	}

	if !authCommands[command] {
		return errUsage
	}
	if _, err := client.Login(ctx, *username, *password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	switch command {
	case "users":
		v, err := client.ListUsers(ctx)
		return show(out, v, err)
	case "me":
		v, err := client.GetUser(ctx, *username)
		return show(out, v, err)
	case "movies":
		v, err := client.ListMovies(ctx)
		return show(out, v, err)
	case "movie", "genre", "director", "favorite", "unfavorite":
		if len(rest) != 1 {
			return errUsage
		}
		return lookup(ctx, client, command, *username, rest[0], out)
	case "delete":
		text, err := client.DeleteUser(ctx, *username)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, text)
		return err
	default:
		return errUsage
	}
}

func lookup(ctx context.Context, client adapter.ServerAdapter, command, username, arg string, out io.Writer) error {
	switch command {
	case "movie":
		v, err := client.GetMovie(ctx, arg)
		return show(out, v, err)
	case "genre":
		v, err := client.GetGenre(ctx, arg)
		return show(out, v, err)
	case "director":
		v, err := client.GetDirector(ctx, arg)
		return show(out, v, err)
	case "favorite":
		v, err := client.AddFavorite(ctx, username, arg)
		return show(out, v, err)
	default:
		v, err := client.RemoveFavorite(ctx, username, arg)
		return show(out, v, err)
	}
}

func show(out io.Writer, v any, err error) error {
	if err != nil {
		return err
	}
	return printJSON(out, v)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
