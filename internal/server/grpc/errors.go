package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error onto a gRPC status. Only the sentinel's
// message reaches the client; validation errors also carry field details.
func toStatus(err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationStatus(verr)
	case errors.Is(err, common.ErrPayloadTooLarge):
		return status.Error(codes.ResourceExhausted, common.ErrPayloadTooLarge.Error())
	case errors.Is(err, common.ErrRootFolderProtected):
		return status.Error(codes.FailedPrecondition, common.ErrRootFolderProtected.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, common.ErrorAlreadyExists.Error())
	case errors.Is(err, common.ErrStorageInconsistency):
		return status.Error(codes.DataLoss, common.ErrStorageInconsistency.Error())
	case errors.Is(err, common.ErrCollaboratorFailure):
		return status.Error(codes.Unavailable, common.ErrCollaboratorFailure.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, context.Canceled.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, context.DeadlineExceeded.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func validationStatus(verr *common.ValidationError) error {
	st := status.New(codes.InvalidArgument, verr.Error())

	br := &errdetails.BadRequest{}
	for _, f := range verr.Fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f.Field,
			Description: f.Message,
		})
	}

	withDetails, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}
