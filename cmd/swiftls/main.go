package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/swiftls/swiftls/bridge"
	"github.com/swiftls/swiftls/lsp"
	"github.com/swiftls/swiftls/rpc"
	"github.com/swiftls/swiftls/server"
)

func main() {
	defer panicHandler()
	ctx := context.Background()
	logger := getLogger("/tmp/swiftls-log.txt")
	stream := rpc.NewHeaderStream(os.Stdin, os.Stdout)
	conn := rpc.NewConn(stream, logger)
	client := lsp.ClientDispatcher(conn)
	srv, cancel := server.New(logger, client, unavailableTransport{}, server.NoBuildSystem{})
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Println("Error shutting down server:", err)
		}
	}()
	ctx = lsp.WithClient(ctx, client)
	conn.Run(ctx, lsp.ServerHandler(srv, cancel, rpc.MethodNotFound))
}

func panicHandler() {
	if panicPayload := recover(); panicPayload != nil {
		stack := string(debug.Stack())
		fmt.Fprintln(os.Stderr, "================================================================================")
		fmt.Fprintln(os.Stderr, "swiftls encountered a fatal error. This is a bug!")
		fmt.Fprintln(os.Stderr, "Please provide all of the below text in your report.")
		fmt.Fprintln(os.Stderr, "================================================================================")
		fmt.Fprintf(os.Stderr, "swiftls Version:      %s\n", "0.0.0") // TODO: wire this up to a real release process
		fmt.Fprintf(os.Stderr, "Go Version:           %s\n", runtime.Version())
		fmt.Fprintf(os.Stderr, "Go Compiler:          %s\n", runtime.Compiler)
		fmt.Fprintf(os.Stderr, "Architecture:         %s\n", runtime.GOARCH)
		fmt.Fprintf(os.Stderr, "Operating System:     %s\n", runtime.GOOS)
		fmt.Fprintf(os.Stderr, "Panic:                %s\n\n", panicPayload)
		fmt.Fprintln(os.Stderr, stack)
		os.Exit(1)
	}
}

func getLogger(filename string) *log.Logger {
	logfile, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	contract.AssertNoErrorf(err, "failed to open log file: %s", filename)
	return log.New(logfile, "[swiftls]", log.Ldate|log.Ltime|log.Lshortfile)
}

// unavailableTransport is the bridge.Transport used when no native analyzer
// library has been loaded into the process. Binding cgo to the real native
// library is this repo's explicitly out-of-scope wire encoding; wiring a
// genuine Transport is left to a build that links it in.
type unavailableTransport struct{}

var errNoNativeAnalyzer = errors.New("no native analyzer library is loaded into this process")

func (unavailableTransport) SendSync(request []byte) ([]byte, error) {
	return nil, errNoNativeAnalyzer
}

func (unavailableTransport) Send(request []byte, onDone func([]byte, error)) (bridge.Cancel, error) {
	onDone(nil, errNoNativeAnalyzer)
	return func() {}, nil
}

func (unavailableTransport) SetNotificationHandler(func([]byte)) {}
