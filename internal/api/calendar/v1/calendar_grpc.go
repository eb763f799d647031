package calendarv1

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "calendar.v1.CalendarService"

const (
	CalendarService_GetAvailability_FullMethodName  = "/" + ServiceName + "/GetAvailability"
	CalendarService_GetMonthGrid_FullMethodName     = "/" + ServiceName + "/GetMonthGrid"
	CalendarService_ExportCalendar_FullMethodName   = "/" + ServiceName + "/ExportCalendar"
	CalendarService_ListBookingItems_FullMethodName = "/" + ServiceName + "/ListBookingItems"
	CalendarService_ListInstructors_FullMethodName  = "/" + ServiceName + "/ListInstructors"
)

// CalendarServiceServer: серверная сторона calendar.v1.CalendarService.
type CalendarServiceServer interface {
	GetAvailability(context.Context, *GetAvailabilityRequest) (*GetAvailabilityResponse, error)
	GetMonthGrid(context.Context, *GetMonthGridRequest) (*GetMonthGridResponse, error)
	ExportCalendar(context.Context, *ExportCalendarRequest) (*ExportCalendarResponse, error)
	ListBookingItems(context.Context, *ListBookingItemsRequest) (*ListBookingItemsResponse, error)
	ListInstructors(context.Context, *ListInstructorsRequest) (*ListInstructorsResponse, error)
}

func RegisterCalendarServiceServer(s grpc.ServiceRegistrar, srv CalendarServiceServer) {
	s.RegisterService(&CalendarService_ServiceDesc, srv)
}

// unaryHandler декодирует запрос и прогоняет вызов через интерсептор.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(CalendarServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalendarServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CalendarServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var CalendarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetAvailability",
			Handler:    unaryHandler(CalendarService_GetAvailability_FullMethodName, CalendarServiceServer.GetAvailability),
		},
		{
			MethodName: "GetMonthGrid",
			Handler:    unaryHandler(CalendarService_GetMonthGrid_FullMethodName, CalendarServiceServer.GetMonthGrid),
		},
		{
			MethodName: "ExportCalendar",
			Handler:    unaryHandler(CalendarService_ExportCalendar_FullMethodName, CalendarServiceServer.ExportCalendar),
		},
		{
			MethodName: "ListBookingItems",
			Handler:    unaryHandler(CalendarService_ListBookingItems_FullMethodName, CalendarServiceServer.ListBookingItems),
		},
		{
			MethodName: "ListInstructors",
			Handler:    unaryHandler(CalendarService_ListInstructors_FullMethodName, CalendarServiceServer.ListInstructors),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calendar/v1/calendar.proto",
}

// CalendarServiceClient: клиент для calendar.v1.CalendarService.
// Все вызовы идут с content-subtype json.
type CalendarServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCalendarServiceClient(cc grpc.ClientConnInterface) *CalendarServiceClient {
	return &CalendarServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CalendarServiceClient) GetAvailability(ctx context.Context, in *GetAvailabilityRequest, opts ...grpc.CallOption) (*GetAvailabilityResponse, error) {
	return invoke[GetAvailabilityResponse](ctx, c.cc, CalendarService_GetAvailability_FullMethodName, in, opts)
}

func (c *CalendarServiceClient) GetMonthGrid(ctx context.Context, in *GetMonthGridRequest, opts ...grpc.CallOption) (*GetMonthGridResponse, error) {
	return invoke[GetMonthGridResponse](ctx, c.cc, CalendarService_GetMonthGrid_FullMethodName, in, opts)
}

func (c *CalendarServiceClient) ExportCalendar(ctx context.Context, in *ExportCalendarRequest, opts ...grpc.CallOption) (*ExportCalendarResponse, error) {
	return invoke[ExportCalendarResponse](ctx, c.cc, CalendarService_ExportCalendar_FullMethodName, in, opts)
}

func (c *CalendarServiceClient) ListBookingItems(ctx context.Context, in *ListBookingItemsRequest, opts ...grpc.CallOption) (*ListBookingItemsResponse, error) {
	return invoke[ListBookingItemsResponse](ctx, c.cc, CalendarService_ListBookingItems_FullMethodName, in, opts)
}

func (c *CalendarServiceClient) ListInstructors(ctx context.Context, in *ListInstructorsRequest, opts ...grpc.CallOption) (*ListInstructorsResponse, error) {
	return invoke[ListInstructorsResponse](ctx, c.cc, CalendarService_ListInstructors_FullMethodName, in, opts)
}
