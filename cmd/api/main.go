package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "salespipeline/docs"
	"salespipeline/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Sales Pipeline Sync API
// @version         1.0
// @description     Quote requests, quotes and contracts kept in sync with the CRM and the e-signature provider.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @tag.name        webhooks
// @tag.description CRM and e-signature callbacks, authenticated by an HMAC-SHA256 body signature.

func main() {
	log.SetFlags(log.LstdFlags | log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx); err != nil {
		log.Fatalf("[api] stopped: %v", err)
	}
	log.Printf("[api] stopped")
}
