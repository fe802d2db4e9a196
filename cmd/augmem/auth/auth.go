// Package authcmder provides the auth command for storing memory server
// credentials.
package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/augmentcode/augmem/pkg/cliui"
	"github.com/augmentcode/augmem/pkg/config"
)

const authLongDesc string = `Store credentials for the agent memory server.

Credentials are stored in config.toml in the .augment/ directory. The
hooks send a stored bearer token as an Authorization header; an API key
is sent as X-Api-Key instead. When both are set the bearer token wins.

Examples:
  augmem auth                    Prompt for a bearer token
  augmem auth --api-key          Prompt for an API key
  augmem auth --remove           Remove stored credentials
  echo $TOKEN | augmem auth      Pipe the token from stdin`

const authShortDesc string = "Store credentials for the memory server"

// credential describes one storable secret: its config key, the label shown
// in prompts, and the request header it is sent as.
type credential struct {
	key    string
	label  string
	header string
}

var (
	bearerToken = credential{key: "bearer_token", label: "bearer token", header: "Authorization: Bearer"}
	apiKey      = credential{key: "api_key", label: "API key", header: "X-Api-Key"}
)

func NewAuthCmd() *cobra.Command {
	var apiKeyFlag bool
	var removeFlag bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: authShortDesc,
		Long:  authLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			if removeFlag {
				return runRemove(configDir)
			}

			cred := bearerToken
			if apiKeyFlag {
				cred = apiKey
			}
			return runAuth(cred, configDir)
		},
	}

	cmd.Flags().BoolVar(&apiKeyFlag, "api-key", false, "Store an API key instead of a bearer token")
	cmd.Flags().BoolVar(&removeFlag, "remove", false, "Remove stored credentials")

	return cmd
}

func runAuth(cred credential, configDir string) error {
	secret, err := readSecret(cred.label)
	if err != nil {
		return err
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", cred.label)
	}

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfger.SetConfigValue(cred.key, secret); err != nil {
		return err
	}

	fmt.Printf("\n  %s Stored %s %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(cred.label),
		cliui.DimStyle.Render("(sent as "+cred.header+")"),
	)

	return nil
}

func runRemove(configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	for _, cred := range []credential{bearerToken, apiKey} {
		if err := cfger.SetConfigValue(cred.key, ""); err != nil {
			return err
		}
	}

	fmt.Printf("\n  %s Removed stored credentials.\n\n", cliui.SuccessMark)

	return nil
}

// readSecret reads a credential from stdin: the first line when input is
// piped, otherwise an interactive prompt with hidden input.
func readSecret(label string) (string, error) {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	if fi.Mode()&os.ModeCharDevice != 0 {
		return promptSecret(label)
	}

	return pipedSecret(os.Stdin)
}

func pipedSecret(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return "", errors.New("no input received on stdin")
}

func promptSecret(label string) (string, error) {
	fmt.Printf("Enter %s for the memory server: ", label)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}

	return string(raw), nil
}
