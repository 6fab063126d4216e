package api

import (
	"context"

	"google.golang.org/grpc"
)

// DriveServiceClient calls DriveService over a client connection. Every
// call is sent with the JSON codec.
type DriveServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDriveServiceClient(cc grpc.ClientConnInterface) *DriveServiceClient {
	return &DriveServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DriveServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *DriveServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *DriveServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *DriveServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *DriveServiceClient) GetFolder(ctx context.Context, in *GetFolderRequest, opts ...grpc.CallOption) (*FolderListing, error) {
	return invoke[FolderListing](ctx, c.cc, MethodGetFolder, in, opts)
}

func (c *DriveServiceClient) CreateFolder(ctx context.Context, in *CreateFolderRequest, opts ...grpc.CallOption) (*CreateFolderResponse, error) {
	return invoke[CreateFolderResponse](ctx, c.cc, MethodCreateFolder, in, opts)
}

func (c *DriveServiceClient) RenameFolder(ctx context.Context, in *RenameFolderRequest, opts ...grpc.CallOption) (*FolderRef, error) {
	return invoke[FolderRef](ctx, c.cc, MethodRenameFolder, in, opts)
}

func (c *DriveServiceClient) DeleteFolder(ctx context.Context, in *DeleteFolderRequest, opts ...grpc.CallOption) (*FolderRef, error) {
	return invoke[FolderRef](ctx, c.cc, MethodDeleteFolder, in, opts)
}

func (c *DriveServiceClient) UploadFile(ctx context.Context, in *UploadFileRequest, opts ...grpc.CallOption) (*UploadFileResponse, error) {
	return invoke[UploadFileResponse](ctx, c.cc, MethodUploadFile, in, opts)
}

func (c *DriveServiceClient) DownloadFile(ctx context.Context, in *DownloadFileRequest, opts ...grpc.CallOption) (*DownloadFileResponse, error) {
	return invoke[DownloadFileResponse](ctx, c.cc, MethodDownloadFile, in, opts)
}

func (c *DriveServiceClient) DeleteFile(ctx context.Context, in *DeleteFileRequest, opts ...grpc.CallOption) (*FolderRef, error) {
	return invoke[FolderRef](ctx, c.cc, MethodDeleteFile, in, opts)
}
