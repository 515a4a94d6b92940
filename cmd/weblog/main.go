package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cesiha/weblog"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "useradd":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: weblog useradd <email> [full name]")
			os.Exit(1)
		}
		if err := runUserAdd(os.Args[2], strings.Join(os.Args[3:], " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("weblog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runUserAdd creates an author account directly in the database. The
// password comes from WEBLOG_PASSWORD so it never appears in shell history.
func runUserAdd(email, fullName string) error {
	password := os.Getenv("WEBLOG_PASSWORD")
	if password == "" {
		return fmt.Errorf("set WEBLOG_PASSWORD to the new account's password")
	}

	store, err := weblog.NewStore(weblog.EnvOr("DATABASE_PATH", "data/blog.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	user, err := store.CreateUser(email, fullName, password)
	if err != nil {
		return err
	}
	fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func printUsage() {
	fmt.Println(`weblog - A blog publishing engine built with Go, Echo, and templ

Usage:
  weblog <command> [arguments]

Commands:
  useradd <email> [full name]   Create an author account (password from WEBLOG_PASSWORD)
  version                       Print the weblog version
  help                          Show this help message

Environment:
  WEBLOG_PASSWORD   Password for useradd
  DATABASE_PATH     SQLite database path (default data/blog.db)`)
}
