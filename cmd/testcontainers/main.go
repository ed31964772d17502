package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/coursemart/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "o", "", "write the server environment to this .env file")
	flag.Parse()

	usage := `
Run a MariaDB testcontainer for local coursemart development.

Usage:

testcontainers [-h] [-o ENV_FILE_PATH]

ENV_FILE_PATH: where to write the server environment (printed to stdout if omitted)

example
  testcontainers -o .env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	ctx := context.Background()
	db, err := testutil.StartMariaDB(ctx, testutil.DefaultMariaDBOptions())
	if err != nil {
		log.Fatalf("Failed to create test container: %v\n", err)
	}

	env := db.Env()
	if envFilename != "" {
		if err := godotenv.Write(env, envFilename); err != nil {
			db.Terminate()
			log.Fatalf("Failed to write environment file: %v\n", err)
		}
		log.Printf("Wrote server environment to %s\n", envFilename)
	} else {
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, env[k])
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	db.Terminate()
}
