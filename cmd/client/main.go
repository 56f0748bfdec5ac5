package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"framechat/internal/chat"
	"framechat/internal/client"
	"framechat/pkg/wire"
)

// Exit codes, one per failure kind.
const (
	exitOK = iota
	exitBadArguments
	exitResolveFailure
	exitConnectFailure
	exitReadFailure
)

func main() {
	transport := flag.String("transport", client.TransportTCP, "Transport to reach the relay: tcp or ws")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <server>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(exitBadArguments)
	}

	address := net.JoinHostPort(flag.Arg(0), strconv.Itoa(chat.DefaultPort))
	c := client.New(address, *transport)
	if err := c.Connect(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, client.ErrResolve) {
			os.Exit(exitResolveFailure)
		}
		os.Exit(exitConnectFailure)
	}

	// quitting is closed before the quit command goes out, so the relay
	// dropping the connection afterwards is not reported as a failure.
	quitting := make(chan struct{})
	go func() {
		for line := range c.Lines() {
			fmt.Println(line)
		}
		select {
		case <-quitting:
			return
		default:
		}
		if err := c.Err(); err != nil {
			// Report right away rather than after the stdin loop, which
			// can block on a read indefinitely.
			fmt.Fprintf(os.Stderr, "Connection lost: %v\n", err)
			os.Exit(exitReadFailure)
		}
	}()

	sentQuit := false
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tag, payload := client.ParseInput(line)
		if tag == wire.TagQuit {
			sentQuit = true
			close(quitting)
		}
		c.Send(tag, payload)
		if sentQuit {
			break
		}
	}

	if !sentQuit {
		close(quitting)
		c.Send(wire.TagQuit, nil)
	}
	c.Disconnect()
	os.Exit(exitOK)
}
