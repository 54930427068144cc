// paymentwatch polls the payments API for one transaction until it reaches a
// terminal status, then prints the result-page URL. Useful for checkout
// smoke-testing without a browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libroconecta/internal/poller"

	_ "github.com/joho/godotenv/autoload"
)

type stdoutNavigator struct{}

func (stdoutNavigator) Navigate(url string) {
	fmt.Printf("-> %s\n", url)
}

func main() {
	var (
		id          = flag.String("id", "", "transaction id or gateway payment id to watch")
		byReference = flag.Bool("by-reference", false, "treat -id as the external reference")
		baseURL     = flag.String("base-url", getenvDefault("PAYMENTS_API_URL", "http://localhost:8080"), "payments API base URL")
		interval    = flag.Duration("interval", 2*time.Second, "poll interval")
		maxWait     = flag.Duration("max-wait", 5*time.Minute, "give up after this long")
	)
	flag.Parse()

	if *id == "" {
		flag.Usage()
		os.Exit(2)
	}

	watcher := poller.New(
		poller.NewHTTPStatusFetcher(*baseURL),
		stdoutNavigator{},
		poller.Config{Interval: *interval, MaxWait: *maxWait},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		watcher.Stop()
	}()

	state, err := watcher.Run(ctx, poller.Subject{ID: *id, ByReference: *byReference})
	if err != nil {
		log.Printf("[payment][watch] finished state=%s err=%v", state, err)
		os.Exit(1)
	}
	log.Printf("[payment][watch] finished state=%s", state)
	if state != poller.StateCompleted {
		os.Exit(1)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
