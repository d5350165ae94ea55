package grpcx

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "conference-service"

// NewServer собирает gRPC-сервер с интерсепторами и health-сервисом.
// Бизнес-API живёт в HTTP/WS; gRPC держим для проб оркестратора.
func NewServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(StreamServerInterceptor()),
	)

	hs := health.NewServer()
	healthv1.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(ServiceName, healthv1.HealthCheckResponse_SERVING)

	return srv, hs
}
