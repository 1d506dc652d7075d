package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shini4i/extra-io/internal/helpers"
	"github.com/shini4i/extra-io/internal/logger"
	"github.com/shini4i/extra-io/pkg/retry"
	"github.com/shini4i/extra-io/pkg/strictio"
	"github.com/shini4i/extra-io/pkg/tempio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "EXTRA_IO"

// ErrFilesDiffer is returned by the equal command when the files are not identical.
var ErrFilesDiffer = errors.New("files differ")

// Options describes the collaborators and defaults required to build the CLI.
type Options struct {
	Version     string
	InitLogging func(debug bool)
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
}

// Execute builds and runs the Cobra command tree using the supplied options.
func Execute(opts Options, args []string) error {
	root := newRootCommand(opts, viper.New())

	if args != nil {
		root.SetArgs(args)
	}
	if opts.In != nil {
		root.SetIn(opts.In)
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}

	return root.Execute()
}

// newRootCommand builds the root Cobra command with global flags bound to the environment.
func newRootCommand(opts Options, v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "extra-io",
		Short:         "Temporary files, strict reads and writes from the shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.InitLogging != nil {
				opts.InitLogging(v.GetBool("debug"))
			}
			return nil
		},
	}

	root.Version = opts.Version
	root.PersistentFlags().BoolP("debug", "d", false, "Enable debug mode")
	root.PersistentFlags().String("temp-root", "", "Directory temporary resources are created in (default: system temp dir)")
	root.PersistentFlags().Int("attempts", retry.DefaultAttempts, "Creation attempts before giving up")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"debug", "temp-root", "attempts"} {
		_ = v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	root.AddCommand(
		newTempCommand("tempfile", "Create a temporary file and print its path", v, (*tempio.Factory).NewFile),
		newTempCommand("tempdir", "Create a temporary directory and print its path", v, (*tempio.Factory).NewDir),
		newReadCommand(v),
		newWriteCommand(v),
		newEqualCommand(),
	)

	return root
}

func newFactory(v *viper.Viper) *tempio.Factory {
	cfg := tempio.NewConfig(
		tempio.WithRoot(v.GetString("temp-root")),
		tempio.WithAttempts(v.GetInt("attempts")),
	)
	return tempio.New(cfg, tempio.Dependencies{Logger: logger.New()})
}

// newTempCommand constructs a command that creates a temporary resource,
// prints its path and removes it again unless --keep is given.
func newTempCommand(use, short string, v *viper.Viper, create func(*tempio.Factory) (tempio.Handle, error)) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := create(newFactory(v))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), handle.Path)

			if keep {
				return nil
			}
			return handle.Delete()
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the resource instead of removing it before exiting")

	return cmd
}

func encodingFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("encoding", "e", "utf-8", "Text encoding, or \"binary\" for raw bytes")
}

// lookupEncoding resolves --encoding of the running command, falling back to
// EXTRA_IO_ENCODING when the flag is not set.
func lookupEncoding(cmd *cobra.Command, v *viper.Viper) (strictio.Encoding, error) {
	if err := v.BindPFlag("encoding", cmd.Flags().Lookup("encoding")); err != nil {
		return strictio.Encoding{}, err
	}
	return strictio.LookupEncoding(v.GetString("encoding"))
}

func newReadCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Read a whole file and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := lookupEncoding(cmd, v)
			if err != nil {
				return err
			}

			content, err := strictio.ReadFile(args[0], enc)
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}

	encodingFlag(cmd)

	return cmd
}

func newWriteCommand(v *viper.Viper) *cobra.Command {
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write standard input to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := lookupEncoding(cmd, v)
			if err != nil {
				return err
			}

			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			if appendMode {
				return strictio.AppendFile(args[0], enc, string(input))
			}
			return strictio.WriteFile(args[0], enc, string(input))
		},
	}

	encodingFlag(cmd)
	cmd.Flags().BoolVarP(&appendMode, "append", "a", false, "Append instead of replacing the file")

	return cmd
}

func newEqualCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equal <a> <b>",
		Short: "Check whether two files have identical content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			equal, err := strictio.FileEqual(args[0], args[1])
			if err != nil {
				return err
			}

			if !equal {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", helpers.Cyan(args[0]), helpers.Red("differs from"), helpers.Cyan(args[1]))
				return ErrFilesDiffer
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is identical to %s\n", helpers.Cyan(args[0]), helpers.Cyan(args[1]))
			return nil
		},
	}
}
