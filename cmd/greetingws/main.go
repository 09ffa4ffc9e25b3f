package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/examplews/greeting-service/cmd/greetingws/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Version kong.VersionFlag

		Serve         commands.ServeCmd         `cmd:"" default:"1" help:"Start the HTTP server."`
		HashPassword  commands.HashPasswordCmd  `cmd:"" help:"Print a bcrypt hash for a password."`
		EnsureRoles   commands.EnsureRolesCmd   `cmd:"" help:"Create or refresh the USER, ADMIN and SYSADMIN roles."`
		CreateAccount commands.CreateAccountCmd `cmd:"" help:"Create an account with the given roles."`
	}
)

// @title                      Greeting Service API
// @version                    1.0
// @description                Greeting web service secured with HTTP Basic authentication and prefix-based access rules.
// @BasePath                   /
// @securityDefinitions.basic  BasicAuth
func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("greetingws"),
		kong.Description("Greeting web service and its administrative tasks."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Version: version})
	cmd.FatalIfErrorf(err)
}
