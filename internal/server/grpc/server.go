package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophdrive/internal/api"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/listing"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// DriveService is the folder and file side of the API.
type DriveService interface {
	GetFolderView(ctx context.Context, userID, folderID string) (*listing.FolderView, error)
	CreateFolder(ctx context.Context, userID, parentID, name string) (*models.Folder, error)
	RenameFolder(ctx context.Context, userID, folderID, name string) (string, error)
	DeleteFolder(ctx context.Context, userID, folderID string) (string, error)
	UploadFile(ctx context.Context, userID, folderID, name, mimeType string, data []byte) (*models.File, error)
	DownloadFile(ctx context.Context, userID, fileID string) (*services.Download, error)
	DeleteFile(ctx context.Context, userID, fileID string) (string, error)
}

type GRPCServer struct {
	address        string
	users          UserService
	drive          DriveService
	logger         logging.Logger
	jwtSecret      []byte
	maxRecvMsgSize int
}

// envelope is the allowance for message framing on top of the payload.
const envelope = 1 << 20

func NewGRPCServer(a string, l logging.Logger, us UserService, ds DriveService, secretKey string, maxUploadSize int64) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		drive:          ds,
		jwtSecret:      []byte(secretKey),
		// content travels base64-encoded inside JSON
		maxRecvMsgSize: int(2*maxUploadSize) + envelope,
	}
}

// newServer builds the gRPC server with the DriveService and the standard
// health service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.MaxRecvMsgSize(s.maxRecvMsgSize),
		grpc.MaxSendMsgSize(s.maxRecvMsgSize),
	)

	api.RegisterDriveServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
