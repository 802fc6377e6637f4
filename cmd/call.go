package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/jrpc-go/pkg/jsonrpc"
)

var (
	urlFlag    string
	paramsFlag string

	callCmd = &cobra.Command{
		Use:   "call <method>",
		Short: "Call a method on a JSON-RPC endpoint",
		Long:  longCall,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := urlFlag
			if url == "" {
				url = viper.GetString("client.url")
			}

			var params json.RawMessage
			if paramsFlag != "" {
				if !json.Valid([]byte(paramsFlag)) {
					return fmt.Errorf("--params is not valid JSON: %s", paramsFlag)
				}
				params = json.RawMessage(paramsFlag)
			}

			client := jsonrpc.NewClient(url)

			var result json.RawMessage
			if err := client.Call(cmd.Context(), args[0], params, &result); err != nil {
				return err
			}

			log.Info("call succeeded", "method", args[0])
			fmt.Println(string(result))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Endpoint URL (overrides config)")
	callCmd.Flags().StringVarP(&paramsFlag, "params", "P", "", "Params as a JSON value")
}

var longCall = `
Call a single method on a JSON-RPC over HTTP endpoint and print the result.

Examples:
  # Add two numbers on the example calculator
  jrpc-go call add --params '{"a":1,"b":2}'

  # Divide with positional params
  jrpc-go call div --params '[10,2]'
`
