// Package api describes the DriveService gRPC contract: request and response
// messages, a JSON codec and the service descriptor shared by the server
// and the client.
package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gophdrive.DriveService"

// Method names.
const (
	MethodPing         = "Ping"
	MethodRegister     = "Register"
	MethodLogin        = "Login"
	MethodRefreshToken = "RefreshToken"
	MethodGetFolder    = "GetFolder"
	MethodCreateFolder = "CreateFolder"
	MethodRenameFolder = "RenameFolder"
	MethodDeleteFolder = "DeleteFolder"
	MethodUploadFile   = "UploadFile"
	MethodDownloadFile = "DownloadFile"
	MethodDeleteFile   = "DeleteFile"
)

// FullMethod returns the gRPC path of method, e.g. "/gophdrive.DriveService/Ping".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// DriveServiceServer is implemented by the server.
type DriveServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	GetFolder(context.Context, *GetFolderRequest) (*FolderListing, error)
	CreateFolder(context.Context, *CreateFolderRequest) (*CreateFolderResponse, error)
	RenameFolder(context.Context, *RenameFolderRequest) (*FolderRef, error)
	DeleteFolder(context.Context, *DeleteFolderRequest) (*FolderRef, error)
	UploadFile(context.Context, *UploadFileRequest) (*UploadFileResponse, error)
	DownloadFile(context.Context, *DownloadFileRequest) (*DownloadFileResponse, error)
	DeleteFile(context.Context, *DeleteFileRequest) (*FolderRef, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DriveServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, DriveServiceServer.Ping),
		unary(MethodRegister, DriveServiceServer.Register),
		unary(MethodLogin, DriveServiceServer.Login),
		unary(MethodRefreshToken, DriveServiceServer.RefreshToken),
		unary(MethodGetFolder, DriveServiceServer.GetFolder),
		unary(MethodCreateFolder, DriveServiceServer.CreateFolder),
		unary(MethodRenameFolder, DriveServiceServer.RenameFolder),
		unary(MethodDeleteFolder, DriveServiceServer.DeleteFolder),
		unary(MethodUploadFile, DriveServiceServer.UploadFile),
		unary(MethodDownloadFile, DriveServiceServer.DownloadFile),
		unary(MethodDeleteFile, DriveServiceServer.DeleteFile),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/api/service.go",
}

func RegisterDriveServiceServer(s grpc.ServiceRegistrar, srv DriveServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds the method descriptor for one request/response call,
// running it through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(DriveServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DriveServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DriveServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
