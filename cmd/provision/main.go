package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/suparena/tablestore"
	"github.com/suparena/tablestore/tableclient/ddb"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	manifestFlag = flag.String("manifest", "tables.yaml", "Path to the table manifest")
)

// manifest lists the tables to provision.
type manifest struct {
	Tables []string `yaml:"tables"`
}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := tablestore.GetVersionInfo()
		fmt.Printf("TableStore provision version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), logger); err != nil {
		logger.Fatal("provisioning failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, proceeding with environment variables")
	}

	connectionString := os.Getenv("TABLESTORE_CONNECTION")
	if connectionString == "" {
		return fmt.Errorf("TABLESTORE_CONNECTION is not set")
	}

	data, err := os.ReadFile(*manifestFlag)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Tables) == 0 {
		return fmt.Errorf("manifest %q declares no tables", *manifestFlag)
	}

	client, err := ddb.New(ctx, connectionString, ddb.WithLogger(logger))
	if err != nil {
		return err
	}

	for _, name := range m.Tables {
		exists, err := client.TableExists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			logger.Info("table already exists", zap.String("table", name))
			continue
		}
		if err := client.CreateTable(ctx, name); err != nil {
			return err
		}
	}

	logger.Info("provisioning complete", zap.Int("tables", len(m.Tables)))
	return nil
}
