package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/booking-calendar/internal/calendar"
	"github.com/Leganyst/booking-calendar/internal/export"
)

// toStatus переводит доменные ошибки в gRPC-статусы.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidDateRange),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, ErrInvalidInstructorID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrInstructorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func (s *CalendarService) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fe.Field()+": "+fe.Tag()+"="+fe.Param())
		} else {
			parts = append(parts, fe.Field()+": "+fe.Tag())
		}
	}
	return status.Error(codes.InvalidArgument, "invalid request: "+strings.Join(parts, ", "))
}
