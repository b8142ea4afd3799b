package httpapi

import (
	"context"
	"errors"
	"net/http"

	cart "github.com/dwikikusuma/coffee-order/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/coffee-order/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/coffee-order/internal/checkout/app"
	gameapp "github.com/dwikikusuma/coffee-order/internal/game/app"
	reviewapp "github.com/dwikikusuma/coffee-order/internal/review/app"
	"github.com/dwikikusuma/coffee-order/internal/session"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("not found")
)

func mapErr(err error) error {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, reviewapp.ErrInvalidInput),
		errors.Is(err, cart.ErrUnknownOption),
		errors.Is(err, checkoutapp.ErrInvalidPaymentMethod),
		errors.Is(err, gameapp.ErrUnknownGame):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errNotFound),
		errors.Is(err, catalogapp.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, checkoutapp.ErrEmptyCart),
		errors.Is(err, gameapp.ErrNoActiveGame):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

// httpStatusFromGRPC translates a status error into the HTTP status, a
// stable error code and the message shown to the client.
func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.FailedPrecondition:
		return http.StatusConflict, "FAILED_PRECONDITION", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", st.Message()
	case codes.Canceled:
		return http.StatusRequestTimeout, "CANCELLED", st.Message()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}
