package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/examplews/greeting-service/internal/core/ports"
	"github.com/examplews/greeting-service/internal/core/security"
	"github.com/examplews/greeting-service/internal/core/service"
	"github.com/examplews/greeting-service/pkg/logger"
)

// HashPasswordCmd prints the hash that would be stored for a password.
// Passing "-" reads the password from stdin.
type HashPasswordCmd struct {
	Password string `arg:"" help:"plaintext password, or - to read from stdin"`
	Cost     int    `help:"bcrypt cost" default:"10"`

	in  io.Reader `kong:"-"`
	out io.Writer `kong:"-"`
}

func (h *HashPasswordCmd) Run(ctx context.Context) error {
	in, out := h.in, h.out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	password := h.Password
	if password == "-" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := security.NewPasswordEncoder(h.Cost).Hash(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

type EnsureRolesCmd struct{}

func (e *EnsureRolesCmd) Run(ctx context.Context) error {
	_, log, err := bootstrapWithMongo(ctx, func(ctx context.Context, deps *adminDeps) error {
		_, err := service.NewRoleService(deps.roles, logger.Component("roles")).EnsureDefaults(ctx)
		return err
	})
	if err != nil {
		return err
	}
	log.Info().Msg("default roles ensured")
	return nil
}

// CreateAccountCmd provisions an account. The password may come from the
// GREETING_ACCOUNT_PASSWORD environment variable to keep it out of shell history.
type CreateAccountCmd struct {
	Username string   `arg:"" help:"account username"`
	Password string   `help:"plaintext password" env:"GREETING_ACCOUNT_PASSWORD" required:""`
	Roles    []string `help:"role codes to grant" default:"USER"`
}

func (c *CreateAccountCmd) Run(ctx context.Context) error {
	_, log, err := bootstrapWithMongo(ctx, func(ctx context.Context, deps *adminDeps) error {
		accounts := service.NewAccountService(deps.accounts, deps.roles, deps.encoder, logger.Component("accounts"))
		_, err := accounts.Create(ctx, ports.CreateAccountInput{
			Username:  c.Username,
			Password:  c.Password,
			RoleCodes: c.Roles,
		})
		return err
	})
	if err != nil {
		return err
	}
	log.Info().Str("username", c.Username).Strs("roles", c.Roles).Msg("account created")
	return nil
}
