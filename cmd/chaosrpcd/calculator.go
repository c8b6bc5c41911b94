package main

import (
	"github.com/chaosrpc/chaosrpc/examples/calc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// calculator is the demo's in-process implementation of
// examples/calc.Handler. It has no wire awareness whatsoever — it is
// exactly what an application author writes, with all the framing
// handled by the generated-shape binding.
type calculator struct{}

func (calculator) Add(a, b int32) int32 {
	return a + b
}

func (calculator) Divide(a, b int32) (int32, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func (calculator) Ping() {}

func (calculator) Log(message string) {
	logrus.WithField("remote", true).Info(message)
}

func (calculator) Mark(p calc.Point) {
	logrus.WithFields(logrus.Fields{"x": p.X, "y": p.Y, "mode": p.Mode}).Info("mark")
}

func (calculator) Describe() calc.Summary {
	return calc.Summary{Count: 1, Label: "chaosrpcd demo calculator"}
}
