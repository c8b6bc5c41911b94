package main

import (
	"context"
	"fmt"

	"github.com/chaosrpc/chaosrpc"
	"github.com/chaosrpc/chaosrpc/examples/calc"
	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/chaosrpc/chaosrpc/transport"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Dial a Calculator server and issue a handful of demonstration calls",
	RunE:  runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	configureLogging()

	addr := viper.GetString("addr")
	ctx := context.Background()

	conn, err := transport.Dial(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	reg := registry.New()
	if err := calc.Register(reg); err != nil {
		return err
	}
	ep := chaosrpc.NewEndpoint(reg)
	ep.Log = logrus.StandardLogger()

	readDone := make(chan error, 1)
	go func() {
		readDone <- transport.Serve(ctx, ep, conn, nil)
	}()

	proxy := calc.NewProxy(ep)

	sum, err := proxy.Add(19, 23)
	if err != nil {
		return err
	}
	quotient, err := proxy.Divide(10, 0)
	if err != nil {
		return err
	}
	ping, err := proxy.Ping()
	if err != nil {
		return err
	}
	if err := proxy.Log("hello from chaosrpcd call"); err != nil {
		return err
	}
	if err := proxy.Mark(calc.Point{X: 1, Y: 2, Mode: calc.ModeRelative}); err != nil {
		return err
	}
	summary, err := proxy.Describe()
	if err != nil {
		return err
	}

	done := make(chan struct{}, 4)
	sum.OnComplete(func(v int32) {
		fmt.Printf("Add(19, 23) = %d\n", v)
		done <- struct{}{}
	})
	quotient.OnResult(func(v int32, errMessage *string) {
		if errMessage != nil {
			fmt.Printf("Divide(10, 0) failed: %s\n", *errMessage)
		} else {
			fmt.Printf("Divide(10, 0) = %d\n", v)
		}
		done <- struct{}{}
	})
	ping.OnComplete(func() {
		fmt.Println("Ping() acknowledged")
		done <- struct{}{}
	})
	summary.OnComplete(func(v calc.Summary) {
		fmt.Printf("Describe() = %+v\n", v)
		done <- struct{}{}
	})

	for i := 0; i < 4; i++ {
		<-done
	}

	return conn.Close()
}
