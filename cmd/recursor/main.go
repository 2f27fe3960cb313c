package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dnslab/recursor/internal/config"
	"github.com/dnslab/recursor/internal/resolver"
	"github.com/dnslab/recursor/internal/server"
	"github.com/dnslab/recursor/pkg/dns/types"
)

func main() {
	var configFile string
	var lookupName string
	var lookupType string
	flag.StringVar(&configFile, "config", "recursor.yaml", "Configuration file path")
	flag.StringVar(&configFile, "c", "recursor.yaml", "Configuration file path (shorthand)")
	flag.StringVar(&lookupName, "lookup", "", "Resolve a single name, print the records and exit")
	flag.StringVar(&lookupType, "type", "A", "Record type for -lookup")
	flag.Parse()

	absPath, _ := filepath.Abs(configFile)
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		log.Printf("Failed to load config from %s: %v, using defaults", absPath, err)
		cfg = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", absPath)
	}

	if lookupName != "" {
		if err := runLookup(cfg, lookupName, lookupType); err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		return
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create DNS server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}

// runLookup resolves one question with the configured engine and prints
// the result in zone-file form.
func runLookup(cfg *config.Config, name, recordType string) error {
	qtype, err := types.ParseType(recordType)
	if err != nil {
		return err
	}
	question, err := resolver.NewQuestion(name, qtype)
	if err != nil {
		return err
	}

	var r resolver.Resolver
	settings := cfg.ResolverSettings()
	if cfg.Resolver.Mode == config.ModeForward {
		r = resolver.NewForwardResolver(settings, nil)
	} else {
		r = resolver.NewIterativeResolver(settings, nil)
	}
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reply, err := r.Resolve(ctx, question)
	if err != nil {
		return err
	}

	fmt.Printf(";; status: %s\n", reply.Header.RCode)
	for _, rr := range reply.Answers {
		fmt.Println(rr)
	}
	if len(reply.Answers) == 0 {
		for _, rr := range reply.Authorities {
			fmt.Println(rr)
		}
	}
	if reply.Header.RCode != types.RCODE_NO_ERROR {
		return &resolver.ResolutionError{RCode: reply.Header.RCode}
	}
	return nil
}
