package main

import "inkpost/cmd"

// @title inkpost API
// @version 1.0
// @description Blogging API: posts, likes, profiles and a like-event stream.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cmd.Execute()
}
