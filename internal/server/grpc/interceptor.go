package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/api"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):         true,
	api.FullMethod(api.MethodRegister):     true,
	api.FullMethod(api.MethodLogin):        true,
	api.FullMethod(api.MethodRefreshToken): true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if publicMethods[info.FullMethod] || strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "method", info.FullMethod, "error", err)
		return nil, toStatus(err)
	}

	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = logging.ContextWithAttrs(ctx, "user_id", userID)

	return handler(ctx, req)
}

const healthServicePrefix = "/grpc.health.v1.Health/"

func userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return userID, nil
}
