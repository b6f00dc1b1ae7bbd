package commands

import (
	"bufio"
	"fmt"
	"strings"

	"storefront/internal/errors"
	"storefront/internal/infra/auth"

	"github.com/spf13/cobra"
)

func newHashKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key [key]",
		Short: "Print the bcrypt hash of an admin API key",
		Long: `Print the bcrypt hash to put in admin.apiKeyHash (or ADMIN_APIKEYHASH).
The key is read from the first argument, or from stdin when omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readKey(cmd, args)
			if err != nil {
				return err
			}

			hash, err := auth.NewBcryptHasher().Hash(key)
			if err != nil {
				return errors.Wrap(err, "hash key")
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)

			return nil
		},
	}
}

func readKey(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return requireKey(args[0])
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "read key from stdin")
	}

	return requireKey(line)
}

func requireKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", errors.New("key must not be empty")
	}

	return key, nil
}
