// Command adminctl is a small operator CLI for the identity-api server.
//
// Usage:
//
//	adminctl [flags] <command> [args]
//
// Commands:
//
//	register <username> <password>   create an account
//	login <username> <password>      authenticate and print a bearer token
//	me                               show the account behind the token
//	validate <username>              check the token against a username
//	list                             list all users (admin)
//	get <id>                         show one user (admin or self)
//	delete <id>                      delete a user (admin)
//	ban <id>                         ban a user (admin)
//	unban <id>                       unban a user (admin)
//
// The bearer token for authenticated commands is taken from the -token flag
// or the ADMIN_TOKEN environment variable.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aturgenev/identity-api/internal/adapter"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "identity-api base URL")
		token     = flag.String("token", os.Getenv("ADMIN_TOKEN"), "bearer token for authenticated commands")
		timeout   = flag.Duration("timeout", 15*time.Second, "request timeout")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	api := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: *serverURL,
		Timeout: *timeout,
	})
	api.SetToken(*token)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, api, args); err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "register":
		username, password, err := credentialArgs(rest)
		if err != nil {
			return err
		}
		user, err := api.Register(ctx, username, password)
		if err != nil {
			return err
		}
		return printJSON(user)

	case "login":
		username, password, err := credentialArgs(rest)
		if err != nil {
			return err
		}
		user, err := api.Login(ctx, username, password)
		if err != nil {
			return err
		}
		fmt.Println(api.Token())
		return printJSON(user)

	case "me":
		user, err := api.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)

	case "validate":
		if len(rest) != 1 {
			return fmt.Errorf("usage: validate <username>")
		}
		user, err := api.ValidateToken(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(user)

	case "list":
		users, err := api.ListUsers(ctx)
		if err != nil {
			return err
		}
		return printJSON(users)

	case "get":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		user, err := api.GetUser(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(user)

	case "delete":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		return api.DeleteUser(ctx, id)

	case "ban":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		return api.BanUser(ctx, id)

	case "unban":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		return api.UnbanUser(ctx, id)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func credentialArgs(args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("usage: <command> <username> <password>")
	}
	return args[0], args[1], nil
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: <command> <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
