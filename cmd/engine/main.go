package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/logging"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/protocol"
)

// The command stream arrives on stdin and every response leaves on stdout;
// diagnostics stay on stderr so they never interleave with protocol output.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "warn", "Diagnostic log level")
	flag.Parse()

	logging.Init(logLevel)

	sess := protocol.NewSession(engine.New(), os.Stdin, os.Stdout)
	if err := sess.Run(); err != nil {
		zap.S().Fatalw("session ended", "err", err)
	}
}
