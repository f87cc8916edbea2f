package main

import "notehub_backend/internal/app"

func main() {
	app.Run()
}
