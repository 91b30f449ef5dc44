// Command agentmq-echo is a broker smoke-test tool built on the agentmq
// library. It can serve echo responses to incoming requests or ping a
// running echo server.
//
// Usage:
//
//	agentmq-echo <command> [flags]
//
// Commands:
//
//	serve    Answer incoming requests with their own payload
//	ping     Send a unicast echo request and wait for the response
//
// Examples:
//
//	# Serve echoes as web.svc.example.org
//	agentmq-echo serve -agent web.svc.example.org
//
//	# Serve as part of a shared subscription group
//	agentmq-echo serve -agent web.svc.example.org -group echo-workers
//
//	# Ping the server from another identity
//	agentmq-echo ping -agent cli.usr.example.org -to web.svc.example.org
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/agent"
	"github.com/agentmq/agentmq-go/pkg/identity"
	"github.com/agentmq/agentmq-go/pkg/log"
	"github.com/agentmq/agentmq-go/pkg/message"
)

const usage = `agentmq-echo - broker smoke test

Usage:
  agentmq-echo <command> [flags]

Commands:
  serve    Answer incoming requests with their own payload
  ping     Send a unicast echo request and wait for the response

Use "agentmq-echo <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		runServe(args)
	case "ping":
		runPing(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// startAgent parses the identity, assembles the session logger and connects.
func startAgent(agentFlag, configPath, trafficLog string, verbose bool) (*agent.Agent, <-chan agent.Notification, *slog.Logger) {
	if agentFlag == "" {
		fatalf("agent identity (-agent) required")
	}
	agentID, err := identity.ParseAgentID(agentFlag)
	if err != nil {
		fatalf("invalid agent identity %q: %v", agentFlag, err)
	}

	cfg := agent.DefaultConfig()
	if configPath != "" {
		cfg, err = agent.LoadConfig(configPath)
		if err != nil {
			fatalf("%v", err)
		}
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	traffic := log.MultiLogger{log.NewSlogAdapter(logger)}
	if trafficLog != "" {
		fileLogger, err := log.NewFileLogger(trafficLog)
		if err != nil {
			fatalf("%v", err)
		}
		traffic = append(traffic, fileLogger)
	}

	a, inbound, err := agent.NewBuilder(agentID).Logger(traffic).Start(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	return a, inbound, logger
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `agentmq-echo serve - Answer incoming requests with their own payload

Usage:
  agentmq-echo serve -agent <label.account.audience> [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	agentFlag := fs.String("agent", "", "Agent identity, e.g. web.svc.example.org")
	configPath := fs.String("config", "", "Broker config file (YAML)")
	group := fs.String("group", "", "Shared subscription group name")
	trafficLog := fs.String("traffic-log", "", "Write CBOR traffic log to this file")
	verbose := fs.Bool("v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	a, inbound, logger := startAgent(*agentFlag, *configPath, *trafficLog, *verbose)
	defer a.Close()

	var sharedGroup *addressing.SharedGroup
	if *group != "" {
		g, err := addressing.ParseSharedGroup(*group)
		if err != nil {
			fatalf("invalid shared group %q: %v", *group, err)
		}
		sharedGroup = &g
	}

	for _, sub := range serveSubscriptions() {
		if err := a.Subscribe(sub, agent.AtLeastOnce, sharedGroup); err != nil {
			fatalf("%v", err)
		}
	}
	logger.Info("serving echoes", "agent", a.ID().String())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigs:
			logger.Info("shutting down")
			return
		case n, ok := <-inbound:
			if !ok {
				return
			}
			if err := serveOne(a, n); err != nil {
				logger.Warn("echo failed", "topic", n.Topic, "error", err)
			}
		}
	}
}

// serveSubscriptions lists what the echo server answers: requests multicast
// to its account and requests unicast directly to it, from anyone.
func serveSubscriptions() []addressing.SubscriptionTopic {
	return []addressing.SubscriptionTopic{
		addressing.NewRequestSubscription(addressing.MulticastSource{}),
		addressing.NewRequestSubscription(addressing.UnicastSource{}),
	}
}

// serveOne answers a single inbound request with its own payload. Anything
// that is not a request is ignored.
func serveOne(a *agent.Agent, n agent.Notification) error {
	env, err := message.ParseIncomingEnvelope(n.Payload)
	if err != nil {
		return err
	}
	if env.Role() != message.RoleRequest {
		return nil
	}

	req, err := message.IntoIncomingRequest[json.RawMessage](env)
	if err != nil {
		return err
	}

	resp := message.ToResponse(req, req.Payload(), message.StatusOK)
	out, err := resp.IntoEnvelope()
	if err != nil {
		return err
	}
	return a.Publish(out)
}

func runPing(args []string) {
	fs := flag.NewFlagSet("ping", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `agentmq-echo ping - Send a unicast echo request and wait for the response

Usage:
  agentmq-echo ping -agent <label.account.audience> -to <label.account.audience> [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	agentFlag := fs.String("agent", "", "Own agent identity, e.g. cli.usr.example.org")
	toFlag := fs.String("to", "", "Target agent identity")
	text := fs.String("text", "ping", "Message text to echo")
	timeout := fs.Duration("timeout", 10*time.Second, "How long to wait for the response")
	configPath := fs.String("config", "", "Broker config file (YAML)")
	trafficLog := fs.String("traffic-log", "", "Write CBOR traffic log to this file")
	verbose := fs.Bool("v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *toFlag == "" {
		fatalf("target agent identity (-to) required")
	}
	target, err := identity.ParseAgentID(*toFlag)
	if err != nil {
		fatalf("invalid target identity %q: %v", *toFlag, err)
	}

	a, inbound, logger := startAgent(*agentFlag, *configPath, *trafficLog, *verbose)
	defer a.Close()

	// Responses come back unicast from the target's account.
	from := target
	sub := addressing.NewResponseSubscription(addressing.UnicastSource{From: &from})
	if err := a.Subscribe(sub, agent.AtLeastOnce, nil); err != nil {
		fatalf("%v", err)
	}

	correlation := uuid.NewString()
	props := message.NewOutgoingRequestProperties("echo", "", correlation, nil)
	req := message.NewUnicastRequest(map[string]string{"text": *text}, props, target)
	out, err := req.IntoEnvelope()
	if err != nil {
		fatalf("%v", err)
	}
	if err := a.Publish(out); err != nil {
		fatalf("%v", err)
	}
	logger.Info("request sent", "to", target.String(), "correlation_data", correlation)

	deadline := time.After(*timeout)
	for {
		select {
		case <-deadline:
			fatalf("no response within %s", *timeout)
		case n, ok := <-inbound:
			if !ok {
				fatalf("connection closed")
			}
			resp, matched := matchResponse(n, correlation)
			if !matched {
				continue
			}
			props := resp.Properties()
			fmt.Printf("%s from %s: %s\n", props.Status(), props.AgentID(), resp.Payload())
			return
		}
	}
}

// matchResponse decodes a notification and reports whether it is the
// response to the request identified by the correlation data.
func matchResponse(n agent.Notification, correlation string) (*message.IncomingResponse[json.RawMessage], bool) {
	env, err := message.ParseIncomingEnvelope(n.Payload)
	if err != nil || env.Role() != message.RoleResponse {
		return nil, false
	}
	resp, err := message.IntoIncomingResponse[json.RawMessage](env)
	if err != nil || resp.Properties().CorrelationData() != correlation {
		return nil, false
	}
	return resp, true
}
