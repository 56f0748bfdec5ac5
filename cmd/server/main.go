package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"framechat/internal/chat"
	"framechat/internal/server"
)

// Exit codes, one per failure kind.
const (
	exitOK = iota
	exitBindFailure
	exitStartupFailure
)

func main() {
	hub := chat.NewHub()
	srv := server.New(fmt.Sprintf(":%d", chat.DefaultPort), hub)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Printf("Server error: %v", err)
			if errors.Is(err, server.ErrBind) {
				os.Exit(exitBindFailure)
			}
			os.Exit(exitStartupFailure)
		}
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down", sig)
		srv.Stop()
	}

	log.Println("Chat relay stopped")
	os.Exit(exitOK)
}
