// Command zmtpcat is a small demonstration client exercising the PUSH,
// PULL, PUB, SUB and REQ socket patterns of this module against a real
// tcp:// ZMTP peer; there is no REP subcommand. It
// is a convenience entry point only, not part of the library's core
// (spec.md §1 lists exactly this kind of thing as out of scope for
// the core and external to it).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mental32/zedmq"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "zmtpcat",
		Short: "talk to a ZeroMQ peer over ZMTP using a single blocking socket",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log handshake and reconnect milestones")

	logger := func() zmtp.Logger {
		if !verbose {
			return nil
		}
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		return zmtp.NewLogrusLogger(l)
	}

	root.AddCommand(newPushCmd(logger), newPullCmd(logger), newPubCmd(logger), newSubCmd(logger), newReqCmd(logger))
	return root
}

// parseEndpoint splits a "transport://host:port" endpoint string into
// its transport and host:port address. The endpoint grammar itself is
// peripheral per spec.md §1, so this is a one-line split rather than a
// parser; rejecting anything but "tcp" is zmtp.Connect's job, not
// this function's (spec.md §6).
func parseEndpoint(endpoint string) (transport, address string, err error) {
	scheme, rest, ok := strings.Cut(endpoint, "://")
	if !ok {
		return "", "", fmt.Errorf("zmtpcat: endpoint %q is not in transport://host:port form", endpoint)
	}
	return scheme, rest, nil
}

func newPushCmd(logger func() zmtp.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "push <tcp://host:port>",
		Short: "read lines from stdin and PUSH each as a single-part message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, addr, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			conn, err := zmtp.Connect(zmtp.TypePush, transport, addr, zmtp.WithLogger(logger()))
			if err != nil {
				return err
			}
			sock := conn.(*zmtp.Push)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if err := sock.Send([][]byte{scanner.Bytes()}); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

func newPullCmd(logger func() zmtp.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <tcp://host:port>",
		Short: "PULL messages and print each part to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, addr, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			conn, err := zmtp.Connect(zmtp.TypePull, transport, addr, zmtp.WithLogger(logger()))
			if err != nil {
				return err
			}
			sock := conn.(*zmtp.Pull)
			for {
				parts, err := sock.Recv()
				if err != nil {
					return err
				}
				printParts(parts)
			}
		},
	}
}

func newPubCmd(logger func() zmtp.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "pub <tcp://host:port>",
		Short: "read lines from stdin and PUB each as topic + body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, addr, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			conn, err := zmtp.Connect(zmtp.TypePub, transport, addr, zmtp.WithLogger(logger()))
			if err != nil {
				return err
			}
			sock := conn.(*zmtp.Pub)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				topic, body, ok := strings.Cut(scanner.Text(), " ")
				if !ok {
					topic, body = "", scanner.Text()
				}
				if err := sock.Send([][]byte{[]byte(topic), []byte(body)}); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

func newSubCmd(logger func() zmtp.Logger) *cobra.Command {
	var topics []string
	cmd := &cobra.Command{
		Use:   "sub <tcp://host:port>",
		Short: "SUB to the given topics and print each matching message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, addr, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			conn, err := zmtp.Connect(zmtp.TypeSub, transport, addr, zmtp.WithLogger(logger()))
			if err != nil {
				return err
			}
			sock := conn.(*zmtp.Sub)
			if len(topics) == 0 {
				topics = []string{""}
			}
			for _, t := range topics {
				if err := sock.Subscribe([]byte(t)); err != nil {
					return err
				}
			}
			for {
				parts, err := sock.Recv()
				if err != nil {
					return err
				}
				printParts(parts)
			}
		},
	}
	cmd.Flags().StringArrayVarP(&topics, "topic", "t", nil, "topic prefix to subscribe to (repeatable; default: empty, matches all)")
	return cmd
}

func newReqCmd(logger func() zmtp.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "req <tcp://host:port> <message>",
		Short: "send a single REQ and print the REP reply",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, addr, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			conn, err := zmtp.Connect(zmtp.TypeReq, transport, addr, zmtp.WithLogger(logger()))
			if err != nil {
				return err
			}
			sock := conn.(*zmtp.Req)
			pending, err := sock.Send([][]byte{[]byte(args[1])})
			if err != nil {
				return err
			}
			reply, _, err := pending.Recv()
			if err != nil {
				return err
			}
			printParts(reply)
			return nil
		},
	}
}

func printParts(parts [][]byte) {
	for i, p := range parts {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Printf("%q", p)
	}
	fmt.Println()
}
