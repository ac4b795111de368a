package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/finovex-pos/pkg/jwt"
)

// NewAskCommand consulta al asesor textil.
func NewAskCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask the textile consultant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			out, err := rt.Container.Advisor.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return WrapExitError(ExitCommandError, "ask", err)
			}
			return rootOpts.formatter(cmd).Success(out, func(w io.Writer) {
				fmt.Fprintln(w, out.Answer)
			})
		},
	}
}

// TokenOptions flags de token.
type TokenOptions struct {
	UserID     string
	ExpMinutes int
}

// NewTokenCommand emite un token de sesión firmado para desarrollo local.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed session token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := rootOpts.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			user := opts.UserID
			if user == "" {
				user = rootOpts.Actor
			}
			exp := opts.ExpMinutes
			if exp <= 0 {
				exp = rt.Config.JWT.Expiration
			}
			tok, err := pkgjwt.Generate(rt.Config.JWT.Secret, user, rootOpts.Role, rt.Config.JWT.Issuer, exp)
			if err != nil {
				return WrapExitError(ExitCommandError, "sign token", err)
			}
			return rootOpts.formatter(cmd).Success(map[string]string{"token": tok, "user_id": user, "role": rootOpts.Role}, func(w io.Writer) {
				fmt.Fprintln(w, tok)
			})
		},
	}
	cmd.Flags().StringVar(&opts.UserID, "user", "", "user id (defaults to --as)")
	cmd.Flags().IntVar(&opts.ExpMinutes, "exp", 0, "expiration in minutes (defaults to JWT_EXPIRATION_MINUTES)")
	return cmd
}
