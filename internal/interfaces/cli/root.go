// Package cli terminal de punto de venta (posctl) sobre los mismos casos de uso que la API.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/finovex-pos/internal/bootstrap"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/pkg/config"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

// Runtime configuración cargada y casos de uso listos.
type Runtime struct {
	Config    *config.Config
	Container *bootstrap.Container
}

// Close libera el almacén.
func (r *Runtime) Close() {
	if r.Container != nil {
		r.Container.Close()
	}
}

// RuntimeFactory construye el Runtime de un comando. Los tests inyectan uno en memoria.
type RuntimeFactory func(ctx context.Context) (*Runtime, error)

// RootOptions flags globales de todos los comandos.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Actor   string // performedBy de las transacciones
	Role    string

	newRuntime RuntimeFactory
}

// ValidFormats formatos de salida permitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz con la configuración del entorno (viper).
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(DefaultRuntime)
}

// NewRootCommandWith crea el comando raíz con una fábrica de Runtime propia.
func NewRootCommandWith(factory RuntimeFactory) *cobra.Command {
	opts := &RootOptions{newRuntime: factory}

	cmd := &cobra.Command{
		Use:   "posctl",
		Short: "Finovex POS terminal",
		Long:  "Point-of-sale terminal for the Finovex wholesale textile inventory: scan sales, restock and reports.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			switch opts.Role {
			case entity.RoleCustomer, entity.RoleWorker, entity.RoleAdmin:
			default:
				return fmt.Errorf("invalid role %q", opts.Role)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Actor, "as", defaultActor(), "user id recorded as performedBy")
	cmd.PersistentFlags().StringVar(&opts.Role, "role", entity.RoleWorker, "role of the terminal user (customer|worker|admin)")

	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewRestockCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewReconcileCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewAskCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// DefaultRuntime carga la configuración y abre el almacén configurado. Los logs van a stderr.
func DefaultRuntime(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "posctl",
		Out:     os.Stderr,
	})
	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Runtime{Config: cfg, Container: c}, nil
}

func (o *RootOptions) actor() entity.Actor {
	return entity.Actor{ID: o.Actor, Role: o.Role}
}

// requireStaff las operaciones de terminal son solo para worker o admin.
func (o *RootOptions) requireStaff() error {
	if !o.actor().IsStaff() {
		return NewExitError(ExitCommandError, fmt.Sprintf("role %q cannot operate the terminal", o.Role))
	}
	return nil
}

func (o *RootOptions) runtime(cmd *cobra.Command) (*Runtime, error) {
	rt, err := o.newRuntime(cmd.Context())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "initialize store", err)
	}
	return rt, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "terminal"
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
