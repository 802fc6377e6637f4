package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	v "github.com/cohesivestack/valgo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/jrpc-go/pkg/errors"
	"github.com/theapemachine/jrpc-go/pkg/jsonrpc"
	"github.com/theapemachine/jrpc-go/pkg/service"
)

var (
	addrFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the example calculator endpoint",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := addrFlag
			if addr == "" {
				addr = viper.GetString("server.addr")
			}

			srv := service.NewRPCServer(viper.GetString("server.name"))
			registerCalculator(srv)

			log.Info("serving JSON-RPC endpoint", "addr", addr)
			return srv.Start(addr)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&addrFlag, "addr", "a", "", "Address to listen on (overrides config)")
}

type binaryParams struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

/*
registerCalculator wires the arithmetic methods onto the server. The handlers
show both dispatch outcomes: computed results and business failures mapped to
server error codes.
*/
func registerCalculator(srv *service.RPCServer) {
	srv.Register("add", func(ctx context.Context, req *jsonrpc.Extractor) jsonrpc.JrpcResult {
		params, errResp := jsonrpc.ParseParams[binaryParams](req)
		if errResp != nil {
			return jsonrpc.Fail(errResp)
		}

		return jsonrpc.Ok(jsonrpc.Success(req.ID, params.A+params.B))
	})

	srv.Register("sub", func(ctx context.Context, req *jsonrpc.Extractor) jsonrpc.JrpcResult {
		params, errResp := jsonrpc.ParseParams[[2]int64](req)
		if errResp != nil {
			return jsonrpc.Fail(errResp)
		}

		val := v.Is(v.Number(params[0], "a").GreaterThan(params[1]))
		if !val.Valid() {
			rpcErr := errors.New(
				errors.ServerError(-32099),
				"a must be greater than b",
				val.Error(),
			)
			return jsonrpc.Fail(jsonrpc.Error(req.ID, rpcErr))
		}

		return jsonrpc.Ok(jsonrpc.Success(req.ID, params[0]-params[1]))
	})

	srv.Register("div", func(ctx context.Context, req *jsonrpc.Extractor) jsonrpc.JrpcResult {
		params, errResp := jsonrpc.ParseParams[[2]int64](req)
		if errResp != nil {
			return jsonrpc.Fail(errResp)
		}

		val := v.Is(v.Number(params[1], "divisor").Not().EqualTo(0))
		if !val.Valid() {
			rpcErr := errors.New(
				errors.ServerError(-32098),
				fmt.Sprintf("cannot divide %d by zero", params[0]),
				nil,
			)
			return jsonrpc.Fail(jsonrpc.Error(req.ID, rpcErr))
		}

		return jsonrpc.Ok(jsonrpc.Success(req.ID, params[0]/params[1]))
	})
}

var longServe = `
Serve the example calculator JSON-RPC endpoint.

Examples:
  # Serve on the configured address
  jrpc-go serve

  # Serve on an explicit address
  jrpc-go serve --addr 127.0.0.1:8080
`
