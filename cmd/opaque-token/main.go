// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/opaque/lib/codec"
	"github.com/bureau-foundation/opaque/lib/sealbox"
	"github.com/bureau-foundation/opaque/lib/secret"
	"github.com/bureau-foundation/opaque/lib/token"
	"github.com/bureau-foundation/opaque/lib/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		fmt.Fprintf(os.Stderr, "error: subcommand required\n")
		return 2
	}

	switch args[0] {
	case "keygen":
		return runKeygen()
	case "seal":
		return runSeal(args[1:])
	case "open":
		return runOpen(args[1:])
	case "fingerprint":
		return runFingerprint(args[1:])
	case "version", "--version":
		fmt.Printf("opaque-token %s\n", version.Info())
		return 0
	case "-h", "--help", "help":
		printUsage()
		return 0
	default:
		printUsage()
		fmt.Fprintf(os.Stderr, "error: unknown subcommand: %q\n", args[0])
		return 2
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: opaque-token <subcommand> [flags]

Subcommands:
  keygen       Generate a sealing key (base64 to stdout)
  seal         Seal a JSON value from stdin into a token
  open         Open a token from stdin back into JSON
  fingerprint  Print the fingerprint of a key (safe to log)
  version      Print version information

Run 'opaque-token <subcommand> --help' for subcommand flags.
`)
}

// runKeygen generates a sealing key and prints it base64-encoded.
// Key material only touches guarded memory and the stdout pipe.
func runKeygen() int {
	key, err := sealbox.NewKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer key.Close()

	fmt.Fprintf(os.Stderr, "# key fingerprint: %s\n", sealbox.Fingerprint(key.Bytes()))
	fmt.Println(base64.StdEncoding.EncodeToString(key.Bytes()))
	return 0
}

// loadKey reads a base64 sealing key from path (or stdin for "-") and
// decodes it into guarded memory. The caller must close the returned
// buffer.
func loadKey(path string) (*secret.Buffer, error) {
	if path == "" {
		return nil, fmt.Errorf("--key is required")
	}

	encoded, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	defer encoded.Close()

	decoded := make([]byte, base64.StdEncoding.DecodedLen(encoded.Len()))
	n, err := base64.StdEncoding.Decode(decoded, encoded.Bytes())
	if err != nil {
		secret.Zero(decoded)
		return nil, fmt.Errorf("key file is not valid base64: %w", err)
	}
	if n != sealbox.KeySize {
		secret.Zero(decoded)
		return nil, fmt.Errorf("key is %d bytes, need %d", n, sealbox.KeySize)
	}
	return secret.NewFromBytes(decoded[:n])
}

// deriveIfRequested applies --context derivation when set, returning
// the key to use. The root is closed once it is no longer needed
// (replaced by a derived key, or derivation failed).
func deriveIfRequested(root *secret.Buffer, context string) (*secret.Buffer, error) {
	if context == "" {
		return root, nil
	}
	derived, err := sealbox.DeriveKey(root, context)
	root.Close()
	if err != nil {
		return nil, err
	}
	return derived, nil
}

func runSeal(args []string) int {
	flagSet := pflag.NewFlagSet("opaque-token seal", pflag.ContinueOnError)
	keyPath := flagSet.String("key", "", "path to base64 key file (required)")
	context := flagSet.String("context", "", "derive a namespace subkey before sealing")
	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	key, err := loadKey(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	key, err = deriveIfRequested(key, *context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer key.Close()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading stdin: %v\n", err)
		return 1
	}

	// JSON at the edge, CBOR inside the token. Decoding through the
	// JSON codec gives map[string]any / []any / scalars, which the
	// CBOR codec re-encodes deterministically.
	var value any
	if err := codec.JSON().Unmarshal(input, &value); err != nil {
		fmt.Fprintf(os.Stderr, "error: stdin is not valid JSON: %v\n", err)
		return 1
	}

	text, err := token.EncodeString(key.Bytes(), value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Println(text)
	return 0
}

func runOpen(args []string) int {
	flagSet := pflag.NewFlagSet("opaque-token open", pflag.ContinueOnError)
	keyPath := flagSet.String("key", "", "path to base64 key file (required)")
	context := flagSet.String("context", "", "derive a namespace subkey before opening")
	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	key, err := loadKey(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	key, err = deriveIfRequested(key, *context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer key.Close()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading stdin: %v\n", err)
		return 1
	}
	text := strings.TrimSpace(string(input))
	if text == "" {
		fmt.Fprintf(os.Stderr, "error: no token on stdin\n")
		return 1
	}

	var value any
	if err := token.DecodeString(key.Bytes(), text, &value); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	output, err := json.Marshal(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: rendering payload as JSON: %v\n", err)
		return 1
	}
	fmt.Println(string(output))
	return 0
}

func runFingerprint(args []string) int {
	flagSet := pflag.NewFlagSet("opaque-token fingerprint", pflag.ContinueOnError)
	keyPath := flagSet.String("key", "", "path to base64 key file (required)")
	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	key, err := loadKey(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer key.Close()

	fmt.Println(sealbox.Fingerprint(key.Bytes()))
	return 0
}
