package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/app"
	"go.uber.org/zap"
)

// Serves the same router behind a Lambda function URL or an API Gateway HTTP API (payload v2).
func main() {
	pkg.InitLogger()
	logger := pkg.Logger
	defer func() { _ = logger.Sync() }()

	router, _, err := app.NewHandler(logger)
	if err != nil {
		logger.Fatal("failed to initialize handler", zap.Error(err))
	}

	lambda.Start(httpadapter.NewV2(router).ProxyWithContext)
}
