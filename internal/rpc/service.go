// Package rpc implements the gRPC surface used by terminal clients: session
// control RPCs plus the bidirectional frame stream. The server it builds is
// served over cleartext HTTP/2 on the same listener as the web traffic.
package rpc

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/termcastio/termcast-server/internal/rpc/termcastpb"
	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/pkg/config"
)

// Service implements termcast.v1.TermcastService against the shared session
// registry.
type Service struct {
	termcastpb.UnimplementedTermcastServiceServer

	cfg      *config.Config
	registry *session.Registry
	logger   *zap.Logger
}

// NewService creates the service. The registry is the same instance handed to
// the web handlers; sessions opened here are immediately visible to viewers.
func NewService(cfg *config.Config, registry *session.Registry, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		registry: registry,
		logger:   logger.Named("rpc"),
	}
}

// NewServer builds the gRPC server with logging interceptors, the termcast
// service, and server reflection registered. Reflection is the static
// self-description surface: clients can discover the termcast.v1 schema
// without a session.
func NewServer(cfg *config.Config, registry *session.Registry, logger *zap.Logger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryLogger(logger)),
		grpc.ChainStreamInterceptor(StreamLogger(logger)),
	)
	termcastpb.RegisterTermcastServiceServer(srv, NewService(cfg, registry, logger))
	reflection.Register(srv)
	return srv
}

// OpenSession registers a new session and returns the writer token plus the
// shareable viewer URL.
func (s *Service) OpenSession(ctx context.Context, req *termcastpb.OpenSessionRequest) (*termcastpb.OpenSessionResponse, error) {
	origin := strings.TrimSpace(req.GetOrigin())
	if origin == "" {
		return nil, status.Error(codes.InvalidArgument, "origin is required")
	}

	sess, token, err := s.registry.Open(origin, req.GetSessionName())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionExists):
			return nil, status.Error(codes.AlreadyExists, "session name already in use")
		case errors.Is(err, session.ErrInvalidName):
			return nil, status.Error(codes.InvalidArgument, "invalid session name")
		default:
			return nil, status.Error(codes.Internal, "failed to open session")
		}
	}

	s.logger.Info("session opened",
		zap.String("session", sess.Name()),
		zap.String("origin", origin))

	return &termcastpb.OpenSessionResponse{
		SessionName: sess.Name(),
		Token:       token,
		Url:         s.viewerURL(origin, sess.Name()),
	}, nil
}

// CloseSession tears down a session after verifying the writer token.
func (s *Service) CloseSession(ctx context.Context, req *termcastpb.CloseSessionRequest) (*termcastpb.CloseSessionResponse, error) {
	err := s.registry.Close(ctx, req.GetSessionName(), req.GetToken())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidToken):
			return nil, status.Error(codes.PermissionDenied, "invalid writer token")
		case errors.Is(err, session.ErrSessionNotFound):
			return nil, status.Error(codes.NotFound, "session not found")
		default:
			return nil, status.Error(codes.Internal, "failed to close session")
		}
	}
	return &termcastpb.CloseSessionResponse{}, nil
}

// viewerURL builds the URL viewers open in a browser. The configured external
// host wins; otherwise the host is taken from the origin the client supplied.
func (s *Service) viewerURL(origin, name string) string {
	host := s.cfg.Server.ExternalHost
	if host == "" {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			host = u.Host
		} else {
			host = origin
		}
	}
	return "https://" + host + "/s/" + name
}
