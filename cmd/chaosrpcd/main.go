// Command chaosrpcd is a worked demonstration binary: it hosts or
// calls the examples/calc.Calculator interface over a transport.Conn,
// exercising the whole stack (wire, registry, future, chaosrpc,
// transport) end to end.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("chaosrpcd: exiting")
		os.Exit(1)
	}
}
