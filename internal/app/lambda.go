package app

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
)

// LambdaHandler - обработчик событий API Gateway поверх того же роутера
type LambdaHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func NewLambdaHandler(router *chi.Mux) LambdaHandler {
	return chiadapter.New(router).ProxyWithContext
}
