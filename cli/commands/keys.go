package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/loupe/cli/keystore"
)

func (a *App) newKeysCommand() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
		Long:  `Manage API keys referenced by host entries in the config file. Keys are stored encrypted.`,
	}

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Store an API key",
		Long:  `Store an API key under the given name. The key is prompted without echo for security.`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runKeysSet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored API keys",
		Long:  `List all stored API keys. Only names are shown, never key values.`,
		RunE:  a.runKeysList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an API key",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runKeysDelete,
	}

	keysCmd.AddCommand(setCmd)
	keysCmd.AddCommand(listCmd)
	keysCmd.AddCommand(deleteCmd)

	return keysCmd
}

func (a *App) runKeysSet(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Prompt for API key
	fmt.Fprintf(a.stdout, "Enter API key for %s: ", name)

	// Read without echo if terminal
	var apiKey string
	if stdin, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(stdin.Fd())) {
		keyBytes, err := term.ReadPassword(int(stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		apiKey = string(keyBytes)
		fmt.Fprintln(a.stdout) // Newline after hidden input
	} else {
		// Fallback for non-terminal (e.g., piped input)
		reader := bufio.NewReader(a.stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		apiKey = strings.TrimSpace(line)
	}

	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	if err := ks.Set(name, apiKey); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key %s stored successfully.\n", name)
	return nil
}

func (a *App) runKeysList(cmd *cobra.Command, args []string) error {
	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	names, err := ks.List()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}

	fmt.Fprintln(a.stdout, "Stored keys:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  - %s\n", name)
	}

	return nil
}

func (a *App) runKeysDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	if err := ks.Delete(name); err != nil {
		if _, ok := err.(*keystore.ErrKeyNotFound); ok {
			return fmt.Errorf("no key stored for %s", name)
		}
		return fmt.Errorf("failed to delete key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key %s deleted.\n", name)
	return nil
}
