package main

import (
	"go.uber.org/fx"

	"github.com/gearbox-hq/gearbox/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
