package main

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	goToken "github.com/MrEthical07/goToken"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

type command struct {
	opts   globalOptions
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func (c command) keygen(args []string) error {
	flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
	flagSet.SetOutput(c.stderr)
	size := flagSet.Int("size", 64, "secret size in bytes; 32, 48 and 64 select HS256, HS384 and HS512")
	if err := flagSet.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if flagSet.NArg() != 0 {
		return &usageError{msg: "keygen takes no arguments"}
	}
	if *size < 32 || *size > 1024 {
		return &usageError{msg: fmt.Sprintf("--size must be between 32 and 1024, got %d", *size)}
	}

	secret := make([]byte, *size)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(c.stdout, base64.StdEncoding.EncodeToString(secret))
	return nil
}

func (c command) issue(args []string) error {
	if len(args) != 1 {
		return &usageError{msg: "issue takes exactly one SUBJECT"}
	}

	engine, closeEngine, err := c.engine()
	if err != nil {
		return err
	}
	defer closeEngine()

	token, err := engine.Issue(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, token)
	return nil
}

func (c command) validate(args []string) error {
	token, err := c.tokenArg("validate", args)
	if err != nil {
		return err
	}

	engine, closeEngine, err := c.engine()
	if err != nil {
		return err
	}
	defer closeEngine()

	res := engine.Validate(token)
	if !res.Valid() {
		fmt.Fprintf(c.stdout, "rejected: %s: %s\n", res.Kind, res.Reason)
		return &exitError{code: 1}
	}
	fmt.Fprintln(c.stdout, "valid")
	return nil
}

func (c command) subject(args []string) error {
	token, err := c.tokenArg("subject", args)
	if err != nil {
		return err
	}

	engine, closeEngine, err := c.engine()
	if err != nil {
		return err
	}
	defer closeEngine()

	subject, err := engine.ExtractSubject(token)
	if err != nil {
		kind := goToken.KindOf(err)
		if kind == goToken.KindNone {
			return err
		}
		fmt.Fprintf(c.stdout, "rejected: %s\n", kind)
		return &exitError{code: 1}
	}
	fmt.Fprintln(c.stdout, subject)
	return nil
}

func (c command) tokenArg(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", &usageError{msg: name + " takes exactly one TOKEN"}
	}
	if args[0] != "-" {
		return args[0], nil
	}

	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read token from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// engine loads configuration and builds an Engine. The returned func closes
// the engine and any Redis client it opened.
func (c command) engine() (*goToken.Engine, func(), error) {
	cfg, err := goToken.LoadConfig(c.opts.envFiles...)
	if err != nil {
		return nil, nil, err
	}

	builder := goToken.New().WithConfig(cfg).WithLogger(c.logger)

	var client redis.UniversalClient
	if cfg.Audit.Enabled && cfg.Audit.RedisAddr != "" {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{cfg.Audit.RedisAddr},
		})
		builder = builder.WithRedis(client)
	}

	engine, err := builder.Build()
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, err
	}

	return engine, func() {
		engine.Close()
		if client != nil {
			_ = client.Close()
		}
	}, nil
}
