package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cicd-demo/calcd/internal/calculator"
	"github.com/cicd-demo/calcd/internal/server"
	"github.com/cicd-demo/calcd/internal/style"
)

// calcCmd evaluates a calculation locally with the same rules as POST /calculate
var calcCmd = &cobra.Command{
	Use:   "calc <operation> <a> <b>",
	Short: "Evaluate a calculation without starting the server",
	Long: fmt.Sprintf(`Evaluate a calculation locally using the same parsing and error rules as
POST /calculate.

Supported operations: %s`, operationList()),
	Example: `
  calcd calc add 10 5
  calcd calc divide 10 4 --output json
  calcd calc -- subtract -3 4        # use -- before negative operands`,
	Args:         cobra.ExactArgs(3),
	SilenceUsage: true,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return strings.Split(operationList(), ", "), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		status, resp, err := evaluate(args[0], args[1], args[2])
		if err != nil {
			return err
		}

		switch viper.GetString("output") {
		case "json":
			style.PrintJSON(cmd.OutOrStdout(), resp)
		case "yaml":
			style.PrintYAML(cmd.OutOrStdout(), resp)
		default:
			if status == http.StatusOK {
				style.Result(cmd.OutOrStdout(), expression(args[0], args[1], args[2]), *resp.Result)
			} else {
				style.Error(cmd.OutOrStdout(), resp.Message)
			}
		}

		if status != http.StatusOK {
			return errors.New(resp.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

// evaluate builds a request body from CLI arguments and dispatches it
func evaluate(operation, a, b string) (int, server.CalculationResponse, error) {
	body, err := json.Marshal(map[string]string{
		"operation": operation,
		"a":         a,
		"b":         b,
	})
	if err != nil {
		return 0, server.CalculationResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	status, resp := server.HandleCalculate(body)
	return status, resp, nil
}

// expression renders CLI arguments in infix form, e.g. "10 add 5"
func expression(operation, a, b string) string {
	return fmt.Sprintf("%s %s %s", a, operation, b)
}

func operationList() string {
	names := make([]string, 0, len(calculator.Operations()))
	for _, op := range calculator.Operations() {
		names = append(names, op.String())
	}
	return strings.Join(names, ", ")
}
