// Package server exposes merged order book summaries over gRPC.
package server

//go:generate protoc -I ../.. --go_out=../.. --go_opt=module=github.com/caesar-terminal/bookagg --go-grpc_out=../.. --go-grpc_opt=module=github.com/caesar-terminal/bookagg api/orderbook.proto

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	orderbookv1 "github.com/caesar-terminal/bookagg/internal/gen/orderbook/v1"
	"github.com/caesar-terminal/bookagg/internal/logger"
)

// Server wraps the gRPC server and its TCP listener.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	log        *logrus.Entry
}

// New creates a server listening on addr and registers svc.
func New(addr string, svc orderbookv1.OrderbookAggregatorServer) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return NewWithListener(lis, svc), nil
}

// NewWithListener registers svc on a server that will accept from lis.
func NewWithListener(lis net.Listener, svc orderbookv1.OrderbookAggregatorServer) *Server {
	log := logger.Get().WithComponent("grpc")
	gs := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryLogger(log)),
		grpc.ChainStreamInterceptor(streamLogger(log)),
	)
	orderbookv1.RegisterOrderbookAggregatorServer(gs, svc)

	return &Server{
		grpcServer: gs,
		listener:   lis,
		log:        log,
	}
}

// Addr returns the listening address.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Serve starts accepting gRPC connections. It blocks until the server
// is stopped or an error occurs.
func (s *Server) Serve() error {
	s.log.WithField("addr", s.Addr().String()).Info("grpc server listening")
	return s.grpcServer.Serve(s.listener)
}

// GracefulStop waits for in-flight RPCs to finish. Open summary streams
// end once the hub closes.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

func unaryLogger(log *logrus.Entry) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		entry := log.WithFields(logger.Fields{"method": info.FullMethod, "elapsed": time.Since(start)})
		if err != nil {
			entry.WithError(err).Warn("rpc failed")
		} else {
			entry.Debug("rpc served")
		}
		return resp, err
	}
}

func streamLogger(log *logrus.Entry) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		entry := log.WithFields(logger.Fields{"method": info.FullMethod, "elapsed": time.Since(start)})
		if err != nil {
			entry.WithError(err).Debug("stream ended with error")
		}
		return err
	}
}
