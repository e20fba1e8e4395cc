// Package adduser registers a user directly against the configured database,
// for bootstrapping an installation without going through the HTTP API.
package adduser

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
)

// openRepositories is a seam for tests.
var openRepositories = server.OpenRepositories

// ParseEmail extracts -email from args, ignoring flags owned by the server
// configuration.
func ParseEmail(args []string) string {
	var email string

	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.StringVar(&email, "email", "", "email of the user to create")
	_ = fs.Parse(flagx.FilterArgs(args, []string{"-email", "--email"}))

	return email
}

// Run prompts for whatever is missing, then creates the user and prints its id.
func Run(ctx context.Context, cfg *config.Config, email string, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	if email == "" {
		var err error
		if email, err = GetSimpleText(reader, "Enter user email", out); err != nil {
			return err
		}
	}

	password, err := GetPassword(out)
	if err != nil {
		return err
	}

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer repos.Close(ctx)

	return register(ctx, repos, cfg.PasswordCost, email, password, out)
}

func register(ctx context.Context, repos repomanager.RepositoryManager, cost int, email, password string, out io.Writer) error {
	if err := repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	svc := services.NewAuthService(repos.Users(), nil, auth.NewBcryptHasher(cost), logging.Discard())
	u, err := svc.Register(ctx, email, password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "created user %s (%s)\n", u.Email, u.ID)
	return err
}
