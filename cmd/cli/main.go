package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coursecomment/coursecomment/internal/buildinfo"
	"github.com/coursecomment/coursecomment/internal/client/cli"
	"github.com/coursecomment/coursecomment/internal/client/config"
	"github.com/coursecomment/coursecomment/internal/common"
	"github.com/coursecomment/coursecomment/internal/cryptox"
	"github.com/coursecomment/coursecomment/internal/logging"
	"github.com/coursecomment/coursecomment/internal/reviews"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coursecomment",
		Short:         "Course review client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runREPL,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newREPLCmd())
	root.AddCommand(newHashCmd())
	root.AddCommand(newReviewsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive client (default)",
		Args:  cobra.NoArgs,
		RunE:  runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	app, err := cli.NewApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [password]",
		Short: "Print the SHA-256 hash sent to the server for a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password []byte
			if len(args) == 1 {
				password = []byte(args[0])
			} else {
				pw, err := cli.GetPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				password = pw
			}
			defer common.WipeByteArray(password)

			_, err := fmt.Fprintln(cmd.OutOrStdout(), cryptox.HashPassword(password))
			return err
		},
	}
}

func newReviewsCmd() *cobra.Command {
	crit := reviews.Criteria{}

	cmd := &cobra.Command{
		Use:   "reviews <file.html>",
		Short: "Filter and sort the review cards of an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintReviewsFile(cmd.OutOrStdout(), args[0], crit)
		},
	}
	cmd.Flags().StringVar(&crit.Semester, "semester", reviews.All, "semester filter (substring or all)")
	cmd.Flags().StringVar(&crit.Instructor, "instructor", reviews.All, "instructor filter (substring or all)")
	cmd.Flags().StringVar(&crit.Order, "order", reviews.LowToHigh, "sort order: high-to-low or low-to-high")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
