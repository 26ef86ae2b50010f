package main

import (
	"go.uber.org/fx"

	"github.com/yourusername/movie-search-bot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
