package main

import (
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"gitget/internal/adapters/git"
	"gitget/internal/adapters/manifest"
	"gitget/internal/adapters/metadata"
	mcpadapter "gitget/internal/adapters/mcp"
	"gitget/internal/adapters/sqlite"
	"gitget/internal/application"
	"gitget/internal/config"
	"gitget/internal/logging"
	"gitget/internal/ports"
	"gitget/internal/version"
)

func main() {
	manifestFlag := flag.String("manifest", "", "path to the manifest (default: located from the working directory)")
	debugFlag := flag.Bool("debug", false, "log debug output")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr
	logger := logging.New(os.Stderr, logging.Options{Debug: *debugFlag, NoColor: true})

	path := *manifestFlag
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("gitget-mcp: %v", err)
		}
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("gitget-mcp: %v", err)
		}
		path = manifest.Locate(cwd, home)
	}

	session := metadata.OpenSession(metadata.Credentials{
		GitHubToken: config.GitHubToken(),
		GitLabToken: config.GitLabToken(),
	})
	defer session.Close()
	builder := application.NewBuilder(git.NewClient(), session.Providers()...)
	store := manifest.NewStore(builder, manifest.WithOptionsObserver(session.Authenticate))
	ws := application.NewWorkspace(store, path, nil)

	var index ports.PackageIndex
	db := sqlite.NewIndex()
	if err := db.Open(path); err != nil {
		logger.Warn("search_packages disabled", "error", err)
	} else {
		defer db.Close()
		index = db
	}

	logger.Info("serving", "manifest", path)
	if err := server.ServeStdio(mcpadapter.NewServer(ws, index, version.Version)); err != nil {
		logger.Error("gitget-mcp stopped", "error", err)
		os.Exit(1)
	}
}
