package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"collections-agent/handler"
	"collections-agent/internal/ctxutil"
	"collections-agent/internal/transport/httpapi"
	"collections-agent/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			if port == 0 {
				port = a.cfg.HTTPPort
			}
			h, err := a.httpHandler()
			if err != nil {
				return err
			}
			e := httpapi.NewServer(h, a.logger)

			errCh := make(chan error, 1)
			go func() {
				addr := fmt.Sprintf(":%d", port)
				a.logger.Info("http server starting", "addr", addr)
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// Wait for interrupt signal
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return fmt.Errorf("start http server: %w", err)
			case <-quit:
			}

			a.logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default HTTP_PORT)")
	return cmd
}

func lambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the HTTP API behind API Gateway on AWS Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			h, err := a.httpHandler()
			if err != nil {
				return err
			}
			lh, err := handler.NewHandler(httpapi.NewServer(h, a.logger))
			if err != nil {
				return err
			}
			lambda.Start(lh.Handle)
			return nil
		},
	}
}

func borrowersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "borrowers",
		Short: "List the borrower directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			printBorrowers(cmd.OutOrStdout(), a.directory.ListBorrowers())
			return nil
		},
	}
}

func chatCmd() *cobra.Command {
	var borrowerID int
	cmd := &cobra.Command{
		Use:   "chat --borrower <id> <message...>",
		Short: "Run one conversation turn for a borrower",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx := ctxutil.WithCorrelationID(cmd.Context(), uuid.NewString())
			res, turnErr := a.turns.Submit(ctx, borrowerID, strings.Join(args, " "))
			return reportTurn(cmd.OutOrStdout(), res, turnErr)
		},
	}
	cmd.Flags().IntVarP(&borrowerID, "borrower", "b", 0, "borrower id")
	_ = cmd.MarkFlagRequired("borrower")
	return cmd
}

// reportTurn prints the transcript of a turn that ran. Turns rejected before
// any message was recorded only return the error.
func reportTurn(out io.Writer, res usecase.TurnResult, turnErr error) error {
	if res.Ignored {
		return errors.New("nothing to send: pick a borrower with --borrower and type a message")
	}
	if turnErr != nil && len(res.Appended) == 0 {
		return errors.New(usecase.AsError(turnErr).Public())
	}
	printTranscript(out, res.Conversation)
	printCounters(out, res.Counters)
	if turnErr != nil {
		return errors.New(usecase.AsError(turnErr).Public())
	}
	return nil
}
