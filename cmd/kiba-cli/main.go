// Command kiba-cli is an interactive client for kiba-server, grounded on
// miniclient.Conn.Attach's liner-driven prompt loop in this corpus
// (pkg/miniclient/client.go) — NewLiner, SetCtrlCAborts, prompt/history,
// io.EOF to exit — adapted from minimega's gob wire protocol to kiba's
// plain-text, newline-framed one.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/lukluk/kiba/internal/banner"
)

var addr string

var rootCmd = &cobra.Command{
	Use:   "kiba-cli",
	Short: "interactive client for kiba-server",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:6464", "kiba-server address to connect to")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", addr, err)
	}
	defer conn.Close()

	banner.Print(fmt.Sprintf("connected to %s", addr))
	reader := bufio.NewReader(conn)

	input := liner.NewLiner()
	defer input.Close()
	input.SetCtrlCAborts(true)

	prompt := "kiba> "

	for {
		line, err := input.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		} else if err == io.EOF {
			fmt.Println()
			return nil
		} else if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		input.AppendHistory(line)

		if _, err := conn.Write([]byte(line + "\n")); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}

		if strings.EqualFold(trimmed, "quit") {
			return nil
		}

		resp, err := readResponse(reader)
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		fmt.Println(resp)
	}
}

// readResponse reads one response body off the wire. SMembers bodies are
// multiple newline-terminated entries (§6); every other outcome is a
// single unterminated body, so a single buffered read is sufficient for
// the interactive client's purposes.
func readResponse(reader *bufio.Reader) (string, error) {
	buf := make([]byte, 4096)
	n, err := reader.Read(buf)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}
