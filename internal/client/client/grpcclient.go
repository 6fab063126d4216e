package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophdrive/internal/api"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.DriveServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	if accessToken == "" || method == api.FullMethod(api.MethodRefreshToken) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refreshToken == "" {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
		if err != nil {
			return err
		}

		s.setTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)

		// tokens refreshed, retry with the new access token
		return invoker(withAccessToken(ctx, refreshTokenResponse.AccessToken), method, req, reply, cc, opts...)

	}

	return nil
}

func NewGophDriveClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials the server. Extra options are appended to the
// defaults, which tests use to swap the transport.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxMessageSize), grpc.MaxCallSendMsgSize(maxMessageSize)),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewDriveServiceClient(conn)
	return nil
}

// maxMessageSize bounds a single upload or download message.
const maxMessageSize = 64 << 20

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) Register(ctx context.Context, userName, password string) error {

	_, err := s.client.Register(ctx, &api.RegisterRequest{Username: userName, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	return nil

}

func (s *GRPCClient) Login(ctx context.Context, userName, password string) error {

	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: userName, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return nil

}

// Logout forgets the tokens. The refresh token stays valid on the server
// until it expires.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) IsLoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func (s *GRPCClient) GetFolder(ctx context.Context, folderID string) (*api.FolderListing, error) {
	resp, err := s.client.GetFolder(ctx, &api.GetFolderRequest{FolderID: folderID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateFolder(ctx context.Context, parentID, name string) (*api.FolderEntry, error) {
	resp, err := s.client.CreateFolder(ctx, &api.CreateFolderRequest{ParentID: parentID, Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Folder, nil
}

func (s *GRPCClient) RenameFolder(ctx context.Context, folderID, name string) (string, error) {
	resp, err := s.client.RenameFolder(ctx, &api.RenameFolderRequest{FolderID: folderID, Name: name})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.FolderID, nil
}

func (s *GRPCClient) DeleteFolder(ctx context.Context, folderID string) (string, error) {
	resp, err := s.client.DeleteFolder(ctx, &api.DeleteFolderRequest{FolderID: folderID})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.FolderID, nil
}

func (s *GRPCClient) Upload(ctx context.Context, folderID, name string, content []byte) (*api.FileEntry, error) {
	resp, err := s.client.UploadFile(ctx, &api.UploadFileRequest{FolderID: folderID, Name: name, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.File, nil
}

func (s *GRPCClient) Download(ctx context.Context, fileID string) (*api.DownloadFileResponse, error) {
	resp, err := s.client.DownloadFile(ctx, &api.DownloadFileRequest{FileID: fileID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteFile(ctx context.Context, fileID string) (string, error) {
	resp, err := s.client.DeleteFile(ctx, &api.DeleteFileRequest{FileID: fileID})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.FolderID, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.ResourceExhausted:
		return ErrTooLarge
	case codes.FailedPrecondition:
		return ErrRootFolder
	case codes.DataLoss:
		return ErrDataLoss
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, fieldViolations(st))
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// fieldViolations renders the per-field details of an InvalidArgument
// status, falling back to its message.
func fieldViolations(st *status.Status) string {
	var parts []string
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			parts = append(parts, v.GetField()+" "+v.GetDescription())
		}
	}
	if len(parts) == 0 {
		return st.Message()
	}
	return strings.Join(parts, "; ")
}
