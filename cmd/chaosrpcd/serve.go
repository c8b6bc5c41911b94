package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/chaosrpc/chaosrpc"
	"github.com/chaosrpc/chaosrpc/examples/calc"
	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/chaosrpc/chaosrpc/transport"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the Calculator example interface over a framed TCP listener",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configureLogging()

	addr := viper.GetString("addr")
	ln, err := transport.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	logrus.WithField("addr", ln.Addr().String()).Info("chaosrpcd: listening")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return ln.Serve(ctx, handleConnection)
}

func handleConnection(ctx context.Context, conn *transport.Conn) {
	log := logrus.WithField("remote", conn.RemoteAddr().String())
	log.Info("chaosrpcd: connection accepted")

	reg := registry.New()
	if err := calc.Register(reg); err != nil {
		log.WithError(err).Error("chaosrpcd: registering interface")
		return
	}

	ep := chaosrpc.NewEndpoint(reg)
	ep.Log = logrus.StandardLogger()
	if err := ep.RegisterHandler(calc.NewHandlerBinding(calculator{})); err != nil {
		log.WithError(err).Error("chaosrpcd: registering handler")
		return
	}

	if err := transport.Serve(ctx, ep, conn, nil); err != nil {
		log.WithError(err).Info("chaosrpcd: connection closed")
	}
}

func configureLogging() {
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
