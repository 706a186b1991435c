package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
	"github.com/learnhub/institute-console/internal/core/service"
	mongodb "github.com/learnhub/institute-console/internal/infrastructure/db/mongo"
	"github.com/learnhub/institute-console/internal/pkg/config"
)

var readPasswordFunc = term.ReadPassword // mockable

var (
	addUserName  string
	addUserEmail string
	addUserRole  string
)

var addUserCmd = &cobra.Command{
	Use:   "adduser",
	Short: "Create an Admin or Staff console account",
	Long: `adduser creates a console account directly in the user store.
The password is prompted without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		client, db, err := mongodb.Connect(cmd.Context(), mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		users := mongodb.NewUserRepository(db)
		if err := mongodb.EnsureIndexes(cmd.Context(), users); err != nil {
			return err
		}

		// Registration never touches sessions.
		svc := service.NewAuthService(users, nil, service.AuthOptions{JWTSecret: cfg.JWTSecret})
		return addUser(cmd.Context(), svc, cmd.OutOrStdout(), ports.RegisterInput{
			Name:  addUserName,
			Email: addUserEmail,
			Role:  domain.Role(addUserRole),
		})
	},
}

func init() {
	addUserCmd.Flags().StringVar(&addUserName, "name", "", "Display name")
	addUserCmd.Flags().StringVar(&addUserEmail, "email", "", "Login email (required)")
	addUserCmd.Flags().StringVar(&addUserRole, "role", string(domain.RoleStaff), "Role: Admin or Staff")
	_ = addUserCmd.MarkFlagRequired("email")
}

// addUser prompts for the password and registers the account.
func addUser(ctx context.Context, svc ports.AuthService, out io.Writer, in ports.RegisterInput) error {
	if !in.Role.Known() {
		return fmt.Errorf("%w: %q (want %s or %s)", domain.ErrUnknownRole, in.Role, domain.RoleAdmin, domain.RoleStaff)
	}

	_, _ = fmt.Fprint(out, "Enter password: ")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(strings.TrimSpace(string(pwd))) == 0 {
		return errors.New("password must not be empty")
	}
	in.Password = string(pwd)

	user, err := svc.Register(ctx, in)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	pterm.Success.WithWriter(out).Printfln("Created %s account %s (%s)", user.Role, user.Email, user.ID)
	return nil
}
