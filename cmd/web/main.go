package main

import "contactdesk_backend/internal/app"

func main() {
	app.Run()
}
