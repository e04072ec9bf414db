package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/tickets/pkg/logging"
)

func main() {
	ctx := context.Background()

	a, err := InitializeApp(ctx)
	if err != nil {
		log.Fatalln(err)
	}

	a.Info("Starting application")
	if err := a.Run(ctx); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
